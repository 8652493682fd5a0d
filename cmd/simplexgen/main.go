// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/SoftbearStudios/simplex/cloud"
	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/store"
	"github.com/SoftbearStudios/simplex/texture"
)

type args struct {
	presetPath   string
	output       string
	seed         int
	width        int
	height       int
	ramp         string
	terrain      bool
	seamless     bool
	tiling       grid.Tiling
	normalMap    bool
	mipmaps      bool
	upload       bool
	region       string
	stage        string
	secondsCache int
	printPreset  bool

	// Names of flags given on the command line.
	set map[string]bool
}

func main() {
	var (
		a          args
		cpuProfile string
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&a.presetPath, "preset", "", "preset json `file` (defaults if empty)")
	flag.StringVar(&a.output, "o", "out.png", "output `file`, format from its extension")
	flag.IntVar(&a.seed, "seed", 0, "override the preset's seed")
	flag.IntVar(&a.width, "width", texture.DefaultSize, "override the preset's width")
	flag.IntVar(&a.height, "height", texture.DefaultSize, "override the preset's height")
	flag.StringVar(&a.ramp, "ramp", "", "color ramp as `offset:#rrggbb,...`")
	flag.BoolVar(&a.terrain, "terrain", false, "use the terrain color ramp")
	flag.BoolVar(&a.seamless, "seamless", false, "make the texture tileable")
	flag.TextVar(&a.tiling, "tiling", grid.TilingBlend, "seamless tiling (blend or torus)")
	flag.BoolVar(&a.normalMap, "normal-map", false, "output a tangent space normal map")
	flag.BoolVar(&a.mipmaps, "mipmaps", false, "also write mipmaps as name_1, name_2...")
	flag.BoolVar(&a.upload, "upload", false, "upload to s3 instead of writing files")
	flag.StringVar(&a.region, "region", "", "aws region for -upload")
	flag.StringVar(&a.stage, "stage", "", "deployment stage for -upload")
	flag.IntVar(&a.secondsCache, "seconds-cache", 3600, "max-age of uploaded files")
	flag.BoolVar(&a.printPreset, "print-preset", false, "print the effective preset as json")
	flag.Parse()

	a.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		a.set[f.Name] = true
	})

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(&a); err != nil {
		log.Fatal(err)
	}
}

func run(a *args) error {
	p, err := loadPreset(a.presetPath)
	if err != nil {
		return err
	}
	if err := a.apply(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if a.printPreset {
		if err := preset.Write(os.Stdout, &p); err != nil {
			return err
		}
	}

	options, err := p.Texture.Options()
	if err != nil {
		return err
	}
	t := texture.New(texture.NewNoise(p.Generator()), options)

	format, err := texture.FormatOf(a.output)
	if err != nil {
		return err
	}

	var fs store.Filesystem
	name := strings.TrimSuffix(a.output, filepath.Ext(a.output))
	if a.upload {
		c, err := cloud.New(a.region, a.stage)
		if err != nil {
			return err
		}
		fs = c.FS
		name = store.Key("textures", filepath.Base(name))
	} else {
		local, err := store.NewLocalFilesystem(filepath.Dir(name))
		if err != nil {
			return err
		}
		fs = local
		name = filepath.Base(name)
	}

	img, err := t.Image()
	if err != nil {
		return err
	}
	filename, err := store.UploadImage(fs, name, img, format, a.secondsCache)
	if err != nil {
		return err
	}
	log.Println("wrote", filename)

	if options.Mipmaps {
		levels, err := t.Mipmaps()
		if err != nil {
			return err
		}
		filenames, err := store.UploadMipmaps(fs, name, levels, format, a.secondsCache)
		if err != nil {
			return err
		}
		log.Println("wrote", len(filenames), "mipmaps")
	}
	return nil
}

func loadPreset(path string) (preset.Preset, error) {
	if path == "" {
		return preset.Default("simplexgen"), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return preset.Preset{}, err
	}
	defer file.Close()

	p, err := preset.Read(file)
	if err != nil {
		return p, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// apply overrides the preset with the flags that were given. A preset without
// texture settings starts from texture.DefaultOptions with mipmaps off.
func (a *args) apply(p *preset.Preset) error {
	if p.Texture == nil {
		options := texture.DefaultOptions()
		options.Mipmaps = false
		p.Texture = preset.FromOptions(options)
	}

	if a.set["seed"] {
		p.Seed = int32(a.seed)
	}
	if a.set["width"] {
		p.Texture.Width = a.width
	}
	if a.set["height"] {
		p.Texture.Height = a.height
	}
	if a.set["ramp"] {
		ramp, err := texture.ParseRamp(a.ramp, texture.InterpolateRGB)
		if err != nil {
			return err
		}
		p.Texture.ColorRamp = ramp.String()
	}
	if a.terrain {
		p.Texture.ColorRamp = texture.TerrainRamp().String()
	}
	if a.set["seamless"] {
		p.Texture.Seamless = a.seamless
	}
	if a.set["tiling"] {
		p.Texture.SeamlessTiling = a.tiling
	}
	if a.set["normal-map"] {
		p.Texture.AsNormalMap = a.normalMap
	}
	if a.set["mipmaps"] {
		p.Texture.GenerateMipmaps = a.mipmaps
	}
	return nil
}
