// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "supplychain-cli"
	app.Usage = "track items through the supply chain"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " supplychaind RPC `HOST:PORT`",
			EnvVar: "SUPPLYCHAIN_CONNECT",
		},
	}

	callerFlag := cli.StringFlag{
		Name:   "caller, a",
		Value:  "",
		Usage:  "*base58 `ACCOUNT` performing the operation",
		EnvVar: "SUPPLYCHAIN_CALLER",
	}
	keyFlag := cli.StringFlag{
		Name:  "key, k",
		Value: "",
		Usage: "*item `KEY` (hex)",
	}

	transitionCommands := []cli.Command{}
	for _, t := range []struct {
		name  string
		usage string
	}{
		{"process", "Harvested → Processed"},
		{"pack", "Processed → Packed"},
		{"sell", "Packed → ForSale at a price"},
		{"buy", "ForSale → Sold, caller becomes owner"},
		{"ship", "Sold → Shipped"},
		{"receive", "Shipped → Received"},
		{"purchase", "Received → Purchased"},
	} {
		flags := []cli.Flag{callerFlag, keyFlag}
		if "sell" == t.name {
			flags = append(flags, cli.Uint64Flag{
				Name:  "price, p",
				Value: 0,
				Usage: "*sale `PRICE`",
			})
		}
		transitionCommands = append(transitionCommands, cli.Command{
			Name:      t.name,
			Usage:     t.usage,
			ArgsUsage: "\n   (* = required)",
			Flags:     flags,
			Action:    runTransition,
		})
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate an ed25519 key pair and its account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "key",
			Usage:     "derive an item key without contacting supplychaind",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "creator, r",
					Value: "",
					Usage: "*base58 creator `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "asset, s",
					Value: 0,
					Usage: "*funding asset `ID`",
				},
				cli.Uint64Flag{
					Name:  "nonce, n",
					Value: 0,
					Usage: "*creator chosen `NONCE`",
				},
			},
			Action: runKey,
		},
		{
			Name:      "create",
			Usage:     "register a newly harvested item",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				cli.Uint64Flag{
					Name:  "asset, s",
					Value: 0,
					Usage: "*funding asset `ID`",
				},
				cli.Uint64Flag{
					Name:  "nonce, n",
					Value: 0,
					Usage: "*creator chosen `NONCE`",
				},
				cli.StringFlag{
					Name:  "farm, f",
					Value: "",
					Usage: " farm `ACCOUNT` [default: caller]",
				},
				cli.StringFlag{
					Name:  "farm-name",
					Value: "",
					Usage: " farm `NAME`",
				},
				cli.StringFlag{
					Name:  "farm-info",
					Value: "",
					Usage: " farm `INFO`",
				},
				cli.Uint64Flag{
					Name:  "longitude",
					Value: 0,
					Usage: " farm `LONGITUDE`",
				},
				cli.Uint64Flag{
					Name:  "latitude",
					Value: 0,
					Usage: " farm `LATITUDE`",
				},
				cli.StringFlag{
					Name:  "note",
					Value: "",
					Usage: " product `NOTE`",
				},
				cli.Uint64Flag{
					Name:  "transfer-amount",
					Value: 0,
					Usage: " quantity of the asset sent to the application `COUNT`",
				},
				cli.StringFlag{
					Name:  "application",
					Value: "",
					Usage: " application `ACCOUNT` receiving funding [default: from supplychaind]",
				},
				cli.Uint64Flag{
					Name:  "payment-amount",
					Value: 0,
					Usage: " minimum balance payment `AMOUNT`",
				},
			},
			Action: runCreate,
		},
	}
	app.Commands = append(app.Commands, transitionCommands...)
	app.Commands = append(app.Commands, []cli.Command{
		{
			Name:      "get",
			Usage:     "display an item",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{keyFlag},
			Action:    runGet,
		},
		{
			Name:      "field",
			Usage:     "display one integer field of an item",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:  "name, m",
					Value: "",
					Usage: "*field `NAME` [stage|price|longitude|latitude]",
				},
			},
			Action: runField,
		},
		{
			Name:      "info",
			Usage:     "display supplychaind status",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action:    runInfo,
		},
		{
			Name:      "watch",
			Usage:     "display published stage events until interrupted",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "publisher, b",
					Value: "127.0.0.1:2135",
					Usage: " publisher `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "server-key, s",
					Value: "",
					Usage: "*publisher public key `FILE`",
				},
				cli.StringFlag{
					Name:  "public-key",
					Value: "",
					Usage: "*client public key `FILE`",
				},
				cli.StringFlag{
					Name:  "private-key",
					Value: "",
					Usage: "*client private key `FILE`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `COUNT` events [0 = never]",
				},
			},
			Action: runWatch,
		},
		{
			Name:   "version",
			Usage:  "display supplychain-cli version",
			Action: runVersion,
		},
	}...)

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
