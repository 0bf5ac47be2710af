// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/rpc/certificate"
	"github.com/bitmark-inc/supplychaind/supplychain"
	"github.com/bitmark-inc/supplychaind/zmqutil"
)

const (
	publisherPublicKeyFilename  = "publisher.public"
	publisherPrivateKeyFilename = "publisher.private"

	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	defaultListCount = 10
	maximumListCount = 1000
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-publisher-key", "pub":
		publicKeyFilename := getFilenameWithDirectory(arguments, publisherPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, publisherPrivateKeyFilename)
		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "start", "run":
		return false // continue processing

	case "dump-item", "item", "item-field", "field", "list-items", "list":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-publisher-key [DIR]    (pub)    - create private key in: %q\n", "DIR/"+publisherPrivateKeyFilename)
		fmt.Printf("                                        and the public key in: %q\n", "DIR/"+publisherPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-item KEY              (item)   - display one item record as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  item-field KEY FIELD       (field)  - display one integer field of an item record\n")
		fmt.Printf("\n")

		fmt.Printf("  list-items [KEY [COUNT]]   (list)   - list item records in key order (LevelDB only)\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the record storage is open so these commands can read it
func processDataCommand(log *logger.L, arguments []string, engine *supplychain.Engine, records *backend) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "dump-item", "item":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing key argument")
		}
		key := parseKey(arguments[0])

		item, err := engine.Get(key)
		if nil != err {
			exitwithstatus.Message("read item: %s  error: %s", key, err)
		}
		printJSON(os.Stdout, item)

	case "item-field", "field":
		if len(arguments) < 2 {
			exitwithstatus.Message("missing key and field arguments")
		}
		key := parseKey(arguments[0])

		value, err := engine.GetField(key, arguments[1])
		if nil != err {
			exitwithstatus.Message("read item: %s  field: %q  error: %s", key, arguments[1], err)
		}
		fmt.Printf("%d\n", value)

	case "list-items", "list":
		if nil == records.cursor {
			exitwithstatus.Message("list-items is not available for backend: %s", records.name)
		}

		cursor := records.cursor
		if len(arguments) >= 1 && "" != arguments[0] {
			key := parseKey(arguments[0])
			cursor.Seek(key.Bytes())
		}

		count := defaultListCount
		if len(arguments) >= 2 {
			n, err := strconv.Atoi(arguments[1])
			if nil != err || n < 1 || n > maximumListCount {
				exitwithstatus.Message("error: count must be in the range 1..%d", maximumListCount)
			}
			count = n
		}

		err := listItems(os.Stdout, cursor, count)
		if nil != err {
			exitwithstatus.Message("list items error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	log.Infof("data command: %s complete", command)

	// indicate processing complete and perform normal exit from main
	return true
}

func parseKey(s string) itemrecord.Key {
	key, err := itemrecord.KeyFromString(s)
	if nil != err {
		exitwithstatus.Message("error: invalid key: %q  error: %s", s, err)
	}
	return key
}

func printJSON(w io.Writer, data interface{}) {
	b, err := json.MarshalIndent(data, "", "  ")
	if nil != err {
		exitwithstatus.Message("JSON error: %s", err)
	}
	fmt.Fprintf(w, "%s\n", b)
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
