package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/urfave/cli/v2"
)

var keygenCommand = &cli.Command{
	Name:  "keygen",
	Usage: "Generate a base64 key for ENCRYPTION_KEY or the cookie keys",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "bytes",
			Aliases: []string{"b"},
			Usage:   "Key length in bytes (16, 24 or 32)",
			Value:   32,
		},
	},
	Action: func(c *cli.Context) error {
		size := c.Int("bytes")
		switch size {
		case 16, 24, 32:
		default:
			return fmt.Errorf("key length must be 16, 24 or 32 bytes, got %d", size)
		}

		key := make([]byte, size)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}

		fmt.Println(base64.StdEncoding.EncodeToString(key))
		return nil
	},
}
