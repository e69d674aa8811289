/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package install registers the server as a systemd service
package install

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/coinsage/coinsage/server/global"
)

const (
	binaryDir   = "/usr/local/bin"
	serviceDir  = "/etc/systemd/system"
	dataDir     = "/var/lib/" + global.UnixBinaryName
	envFile     = "/etc/" + global.UnixBinaryName + ".env"
	serviceName = global.UnixBinaryName
)

type Install struct {
	binaryDir  string
	serviceDir string
	run        func(name string, args ...string) error
}

func New() *Install {
	return &Install{
		binaryDir:  binaryDir,
		serviceDir: serviceDir,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (i *Install) Install() error {
	// Call the private function for os specific install
	return i.installService()
}

func (i *Install) Uninstall() error {
	return i.uninstallService()
}

func (i *Install) Upgrade() error {
	return i.upgradeService()
}

func (i *Install) binaryPath() string {
	return filepath.Join(i.binaryDir, global.UnixBinaryName)
}

func (i *Install) unitPath() string {
	return filepath.Join(i.serviceDir, serviceName+".service")
}

// Unit returns the systemd unit that runs binary in the foreground. The
// environment file is optional so that variables may come from elsewhere.
func Unit(binary string) string {
	return fmt.Sprintf(`[Unit]
Description=%s
After=network-online.target
Wants=network-online.target
StartLimitIntervalSec=0

[Service]
WorkingDirectory=%s
EnvironmentFile=-%s
Environment=DATA_PATH=%s
Restart=always
RestartSec=5
ExecStart=%s foreground

[Install]
WantedBy=multi-user.target
`, global.Description, dataDir, envFile, dataDir, binary)
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func(in *os.File) {
		_ = in.Close()
	}(in)

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func(out *os.File) {
		_ = out.Close()
	}(out)

	_, err = io.Copy(out, in)
	if err != nil {
		return err
	}

	return out.Close()
}
