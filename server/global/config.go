/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strconv"

	"github.com/coinsage/coinsage/common/uconfig"
	"github.com/coinsage/coinsage/common/uconfig/params"
)

type ServerConfig struct {
	C  *uconfig.UConfig // Config object
	SC *params.Params   // Server configuration
	BC *params.Params   // Bot and upstream configuration
	SP *params.Params   // Credentials
}

// Config creates the configuration object, sets defaults, and
// loads values from the environment and .env files
func Config(options ...func(*uconfig.UConfig) error) (*ServerConfig, error) {
	var err error
	c := &ServerConfig{}

	if len(options) == 0 {
		options = defaultSources()
	}

	c.C, err = uconfig.New(options...)
	if err != nil {
		return &ServerConfig{}, err
	}

	// Set constraints, including default values
	c.SC, c.BC, c.SP = setDefaults(c.C)
	c.C.Apply()

	// Make sure the data directory exists
	dPath := c.SC.Get(ConfigDataPath).String()
	if !uconfig.CreateDir(dPath) {
		return &ServerConfig{}, fmt.Errorf("unable to open or create %s", dPath)
	}

	if c.SC.Get(ConfigDebug).Bool() {
		Debug = true
	}

	return c, nil
}

// defaultSources reads COINSAGE_ENV_FILE if set, otherwise the usual .env locations
func defaultSources() []func(*uconfig.UConfig) error {
	probe, _ := uconfig.New()
	if f, ok := probe.Lookup(EnvFileVar); ok && f != "" {
		return []func(*uconfig.UConfig) error{uconfig.WithEnvFile(f)}
	}
	return []func(*uconfig.UConfig) error{uconfig.WithFind(EnvFiles)}
}

// Listen returns the HTTP listen address
func (c *ServerConfig) Listen() string {
	if ListenOverride != "" {
		return ListenOverride
	}
	return net.JoinHostPort(c.SC.Get(ConfigListenHost).String(), strconv.Itoa(c.SC.Get(ConfigPort).Int()))
}

// DBFile returns the path of the query-log database
func (c *ServerConfig) DBFile() string {
	return filepath.Join(c.SC.Get(ConfigDataPath).String(), DBFileName)
}

// MissingCredentials lists required credentials that are not set
func (c *ServerConfig) MissingCredentials() []string {
	var missing []string
	for _, key := range []string{ConfigTelegramToken, ConfigGeminiKey} {
		if c.SP.Get(key).String() == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// GenerateToken creates a new random token
func GenerateToken() (string, error) {
	// Create a byte slice to hold the random data
	token := make([]byte, TokenLength)

	// Read random data into the byte slice
	if _, err := io.ReadFull(rand.Reader, token); err != nil {
		return "", err
	}

	// Encode the byte slice in base64
	return base64.URLEncoding.EncodeToString(token), nil
}
