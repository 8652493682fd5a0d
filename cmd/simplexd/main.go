// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/SoftbearStudios/simplex/cloud"
	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/server"
	"github.com/SoftbearStudios/simplex/store"
	"github.com/SoftbearStudios/simplex/texture"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		port           int
		maxConnections int
		offline        bool
		region         string
		stage          string
		localDir       string
		presetPath     string
		secondsCache   int
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.BoolVar(&offline, "offline", false, "don't connect to the cloud")
	flag.StringVar(&region, "region", "", "aws region (default from instance user data)")
	flag.StringVar(&stage, "stage", "", "deployment stage (default from instance user data)")
	flag.StringVar(&localDir, "local-dir", "", "store uploads in `dir` instead of s3")
	flag.StringVar(&presetPath, "preset", "", "initial preset json `file`")
	flag.IntVar(&secondsCache, "seconds-cache", 3600, "max-age of uploaded files")
	flag.Parse()

	options := server.HubOptions{
		Noise:        noise.NewDefault(),
		Texture:      texture.DefaultOptions(),
		SecondsCache: secondsCache,
	}

	if presetPath != "" {
		p, err := readPreset(presetPath)
		if err != nil {
			log.Fatal(err)
		}
		options.Noise = p.Generator()
		if p.Texture != nil {
			if options.Texture, err = p.Texture.Options(); err != nil {
				log.Fatal(err)
			}
		}
	}

	var c *cloud.Cloud
	if !offline {
		var err error
		c, err = cloud.New(region, stage)
		if err != nil {
			// Cloud is not required for server to function, just log an error
			log.Printf("Cloud error: %v\n", err)
			c = nil
		}
	}

	if c != nil {
		options.Database = c.Database
		options.Filesystem = c.FS
	} else {
		options.Database = preset.NewMemoryDatabase()
	}

	if localDir != "" {
		fs, err := store.NewLocalFilesystem(localDir)
		if err != nil {
			log.Fatal(err)
		}
		options.Filesystem = fs
	}

	hub := server.NewHub(options)
	go hub.Run(context.Background())

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Printf("%s server started on http://localhost:%d\n", c, port)
	log.Fatal("Serve: ", http.Serve(l, hub.Handler()))
}

func readPreset(path string) (preset.Preset, error) {
	file, err := os.Open(path)
	if err != nil {
		return preset.Preset{}, err
	}
	defer file.Close()

	p, err := preset.Read(file)
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	g := p.Generator()
	return p, g.Validate()
}
