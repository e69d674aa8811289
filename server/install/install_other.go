//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

//go:build !linux

package install

import "errors"

var errUnsupported = errors.New("service installation is only supported on Linux with systemd")

func (i *Install) installService() error {
	return errUnsupported
}

func (i *Install) uninstallService() error {
	return errUnsupported
}

func (i *Install) upgradeService() error {
	return errUnsupported
}

func CheckRootPrivileges() error {
	return nil
}
