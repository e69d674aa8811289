//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coinsage/coinsage/common"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/server/data"
	"github.com/coinsage/coinsage/server/global"
	"github.com/coinsage/coinsage/server/install"
)

var conf *global.ServerConfig
var logger interfaces.Logger

func main() {

	// With no arguments run in the foreground
	if len(os.Args) == 1 {
		startService()
		return
	}

	console()
	exit(0, false)
}

// console handles sub-commands
func console() {
	var err error

	switch strings.ToLower(os.Args[1]) {

	case "version":
		common.Banner(global.Description, global.Version, global.Build)

	case "foreground":
		startService()

	case "config":
		conf, err = global.Config()
		if err != nil {
			fmt.Printf("Fatal config error: %v\n", err)
			return
		}
		conf.C.Dump(global.Secrets)
		if missing := conf.MissingCredentials(); len(missing) > 0 {
			fmt.Printf("\nMissing credentials: %s\n", strings.Join(missing, ", "))
		}

	case "listen":
		if len(os.Args) != 3 {
			fmt.Println("Usage: listen <address>")
			fmt.Printf("Example: %s listen 127.0.0.1:3000\n", global.UnixBinaryName)
			return
		}

		address := os.Args[2]
		if _, err = net.ResolveTCPAddr("tcp", address); err != nil {
			fmt.Printf("Invalid listen address: %v\n", err)
			return
		}

		global.ListenOverride = address
		startService()

	case "install", "uninstall", "upgrade":
		service(strings.ToLower(os.Args[1]))

	case "token":
		if len(os.Args) < 3 || len(os.Args) > 4 {
			fmt.Println("Usage: token <subject> [minutes]")
			return
		}

		minutes := global.DefaultTokenLife
		if len(os.Args) == 4 {
			minutes, err = strconv.Atoi(os.Args[3])
			if err != nil || minutes < 1 {
				fmt.Printf("Invalid lifetime: %s\n", os.Args[3])
				return
			}
		}
		mintToken(os.Args[2], minutes)

	default:
		usage()
	}
}

// mintToken prints a bearer token for the query-log API
func mintToken(subject string, minutes int) {
	var err error

	conf, err = global.Config()
	if err != nil {
		fmt.Printf("Fatal config error: %v\n", err)
		return
	}

	d, err := data.New(conf, null.Logger())
	if err != nil {
		fmt.Printf("Data error: %s\n", err.Error())
		return
	}
	defer d.Close()

	if !d.AuthEnabled() {
		key, keyErr := global.GenerateToken()
		if keyErr != nil {
			fmt.Printf("Unable to generate a signing key: %s\n", keyErr.Error())
			return
		}
		fmt.Printf("%s is not set, so the API does not require tokens.\n", global.ConfigAPITokenKey)
		fmt.Printf("To enable authentication add this line to your environment:\n\n%s=%s\n", global.ConfigAPITokenKey, key)
		return
	}

	tok, err := d.CreateToken(subject, minutes)
	if err != nil {
		fmt.Printf("Error creating token: %s\n", err.Error())
		return
	}

	fmt.Printf("Token for \"%s\" valid for %d minutes:\n\n%s\n", subject, minutes, tok)
}

// service installs, removes or upgrades the systemd unit
func service(action string) {
	if err := install.CheckRootPrivileges(); err != nil {
		fmt.Println(err.Error())
		exit(1, false)
	}

	i := install.New()
	var err error
	switch action {
	case "install":
		err = i.Install()
	case "uninstall":
		err = i.Uninstall()
	case "upgrade":
		err = i.Upgrade()
	}

	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		exit(1, false)
	}
	fmt.Printf("%s %s complete\n", global.Name, action)
}

func usage() {
	fmt.Printf("Usage: %s <foreground | listen <address> | config | token <subject> [minutes] | install | uninstall | upgrade | version>\n", os.Args[0])
}

func exit(code int, delay bool) {
	if delay {
		fmt.Printf("\nExiting with code %d in %d seconds...\n\n", code, global.ConsoleExitDelay)
		time.Sleep(global.ConsoleExitDelay * time.Second)
	} else {
		fmt.Printf("\nExiting with code %d\n\n", code)
	}
	os.Exit(code)
}
