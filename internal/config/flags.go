// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line arguments args (without the program
// name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (pgx or sqlite3)
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key security hash key
//	-server-url base url of the server for the client
//	-server-grpc grpc address of the server for the client
//	-client-id client id
//	-sync-interval client sync period
//	-persist-interval state persistence period
//	-reap-interval idle client reaper period
//	-client-ttl idle client time to live
//	-tui render the client's terminal status view
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var hashKey string
	var adapterAddress, adapterGRPCAddress, clientID string
	var syncInterval, persistInterval, reapInterval, clientTTL time.Duration
	var interactive bool

	fs := flag.NewFlagSet("go-delta-sync", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Security hash key")
	fs.StringVar(&adapterAddress, "server-url", "", "Server base URL used by the client")
	fs.StringVar(&adapterGRPCAddress, "server-grpc", "", "Server gRPC address used by the client")
	fs.StringVar(&clientID, "client-id", "", "Client id")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Client sync interval")
	fs.DurationVar(&persistInterval, "persist-interval", 0, "State persistence interval")
	fs.DurationVar(&reapInterval, "reap-interval", 0, "Idle client reaper interval")
	fs.DurationVar(&clientTTL, "client-ttl", 0, "Idle client time to live")
	fs.BoolVar(&interactive, "tui", false, "Render the client terminal status view")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey:     hashKey,
			Interactive: interactive,
		},
		Storage: Storage{
			DB: DB{
				DSN:    databaseDSN,
				Driver: databaseDriver,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			GRPCAddress:    adapterGRPCAddress,
			RequestTimeout: requestTimeout,
			ClientID:       clientID,
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			PersistInterval: persistInterval,
			ReapInterval:    reapInterval,
			ClientTTL:       clientTTL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
