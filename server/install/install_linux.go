//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Linux specific functions
//go:build linux

package install

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/coinsage/coinsage/common/uconfig"
)

// Install the service
func (i *Install) installService() error {

	// Get the path of the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not find executable path: %w", err)
	}

	// Return error if serviceDir doesn't exist
	if _, err = os.Stat(i.serviceDir); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist - aborting install", i.serviceDir)
	}

	// Copy the executable to the target directory
	target := i.binaryPath()
	if exePath != target {
		if err = copyFile(exePath, target); err != nil {
			return fmt.Errorf("error copying file %s to %s: %w", exePath, target, err)
		}
	}
	fmt.Printf("Binary copied to %s\n", target)

	// Set the proper permissions on the binary
	if err = os.Chmod(target, 0755); err != nil {
		return fmt.Errorf("could not set permissions on binary: %w", err)
	}

	if !uconfig.CreateDir(dataDir) {
		return fmt.Errorf("could not create %s", dataDir)
	}

	if err = i.createService(); err != nil {
		return err
	}

	if err = i.run("systemctl", "start", serviceName); err != nil {
		return fmt.Errorf("could not start service: %w", err)
	}
	return nil
}

// Uninstall the service. The data directory and environment file are kept.
func (i *Install) uninstallService() error {

	if err := i.run("systemctl", "stop", serviceName); err != nil {
		return fmt.Errorf("could not stop service: %w", err)
	}
	_ = i.run("systemctl", "disable", serviceName)

	if err := os.Remove(i.unitPath()); err != nil {
		return fmt.Errorf("could not remove service file: %w", err)
	}

	if err := os.Remove(i.binaryPath()); err != nil {
		return fmt.Errorf("could not remove binary file: %w", err)
	}

	return i.run("systemctl", "daemon-reload")
}

// Upgrade the service
func (i *Install) upgradeService() error {

	fmt.Println("Uninstalling existing server...")
	if err := i.uninstallService(); err != nil {
		return fmt.Errorf("could not remove existing service: %w", err)
	}

	// Delay for two seconds to allow the system to release the file
	time.Sleep(2 * time.Second)

	fmt.Println("\nInstalling new server...")
	return i.installService()
}

// CheckRootPrivileges checks if the current user has root privileges and if not,
// it will attempt to gain root privileges by running the current program with sudo
func CheckRootPrivileges() error {
	if os.Geteuid() != 0 {
		fmt.Println("\nThis command must be run as root, restarting with sudo...")
		cmd := exec.Command("sudo", os.Args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		err := cmd.Run()
		if err != nil {
			return fmt.Errorf("failed to gain root privileges: %w", err)
		}
		os.Exit(0)
	}
	return nil
}

// createService writes the unit file and enables it
func (i *Install) createService() error {
	target := i.unitPath()
	if err := os.WriteFile(target, []byte(Unit(i.binaryPath())), 0644); err != nil {
		return fmt.Errorf("could not write service file: %w", err)
	}

	if err := i.run("systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("error reloading systemd daemon: %w", err)
	}

	// An error here is not fatal; the unit may already be enabled
	if err := i.run("systemctl", "enable", serviceName); err != nil {
		fmt.Printf("Warning: error enabling service (may already be enabled): %s\n", err.Error())
	}

	fmt.Printf("Service file created at: %s\n", target)
	return nil
}
