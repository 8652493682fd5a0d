// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/store"
	"github.com/SoftbearStudios/simplex/texture"
)

const (
	// Largest texture rendered per request.
	maxTextureSize = 4096
	maxRequestBody = 1 << 16
)

// Handler routes all of the hub's endpoints.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.ServeIndex)
	mux.HandleFunc("GET /ws", h.ServeSocket)
	mux.HandleFunc("GET /texture", h.ServeTexture)
	mux.HandleFunc("GET /preview", h.ServePreview)
	mux.HandleFunc("GET /atlas", h.ServeAtlas)
	mux.HandleFunc("GET /hints", h.ServeHints)
	mux.HandleFunc("GET /presets", h.ServePresets)
	mux.HandleFunc("POST /presets", h.ServeSavePreset)
	mux.HandleFunc("GET /presets/{name}", h.ServePreset)
	mux.HandleFunc("DELETE /presets/{name}", h.ServeDeletePreset)
	mux.HandleFunc("POST /upload", h.ServeUpload)
	return mux
}

func (h *Hub) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := h.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	h.Register(NewSocketClient(h, conn))
}

// ServeTexture renders the shared configuration. Query parameters override
// properties by name for this request only, "preset" starts from a stored preset
// instead, and "format" picks the encoding (png by default).
func (h *Hub) ServeTexture(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	n := texture.NewNoise(h.noise.Generator())
	t := texture.New(n, h.texture.Options())

	if name := query.Get("preset"); name != "" {
		if h.db == nil {
			httpError(w, ErrNoDatabase)
			return
		}
		p, err := h.db.ReadPreset(name)
		if err != nil {
			httpError(w, err)
			return
		}
		n.Set(p.Generator())
		if p.Texture != nil {
			options, err := p.Texture.Options()
			if err != nil {
				httpError(w, err)
				return
			}
			t.SetOptions(options)
		}
	}

	format := texture.FormatPNG
	for key, values := range query {
		var err error
		switch key {
		case "preset":
			continue
		case "format":
			format, err = texture.ParseFormat(values[0])
		default:
			err = setProperty(n, t, key, values[0])
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if options := t.Options(); options.Width > maxTextureSize || options.Height > maxTextureSize {
		http.Error(w, fmt.Sprintf("texture is larger than %dx%d", maxTextureSize, maxTextureSize), http.StatusBadRequest)
		return
	}

	img, err := t.Image()
	if err != nil {
		httpError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := texture.Encode(&buf, img, format); err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	_, _ = w.Write(buf.Bytes())
}

// ServePreview serves the shared preview as png, resampled if "size" is given.
func (h *Hub) ServePreview(w http.ResponseWriter, r *http.Request) {
	size := texture.PreviewSize
	if s := r.URL.Query().Get("size"); s != "" {
		var err error
		size, err = strconv.Atoi(s)
		if err != nil || size < 1 || size > maxTextureSize {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
	}

	img, err := h.noise.PreviewScaled(size, size)
	if err != nil {
		httpError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		httpError(w, err)
		return
	}
	w.Header().Set("Content-Type", texture.FormatPNG.ContentType())
	w.Header().Set("X-Noise-Version", strconv.FormatUint(h.noise.Version(), 10))
	_, _ = w.Write(buf.Bytes())
}

// ServeAtlas serves a compressed region of the shared plane as json.
func (h *Hub) ServeAtlas(w http.ResponseWriter, r *http.Request) {
	var region [4]int
	for i, key := range [...]string{"x", "y", "width", "height"} {
		v, err := strconv.Atoi(r.URL.Query().Get(key))
		if err != nil {
			http.Error(w, "invalid "+key, http.StatusBadRequest)
			return
		}
		region[i] = v
	}

	raster := h.Atlas().At(region[0], region[1], region[2], region[3])
	defer raster.Pool()

	writeJSON(w, http.StatusOK, raster)
}

func (h *Hub) ServeHints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preset.Hints)
}

func (h *Hub) ServePresets(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		httpError(w, ErrNoDatabase)
		return
	}

	presets, err := h.db.ReadPresets()
	if err != nil {
		httpError(w, err)
		return
	}
	if presets == nil {
		presets = []preset.Preset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

func (h *Hub) ServePreset(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		httpError(w, ErrNoDatabase)
		return
	}

	p, err := h.db.ReadPreset(r.PathValue("name"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &p)
}

// ServeSavePreset stores the posted preset. An existing preset is only replaced
// with ?overwrite=true.
func (h *Hub) ServeSavePreset(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		httpError(w, ErrNoDatabase)
		return
	}

	p, err := preset.Read(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		httpError(w, err)
		return
	}

	if overwrite, _ := strconv.ParseBool(r.URL.Query().Get("overwrite")); overwrite {
		err = h.db.UpdatePreset(p)
	} else {
		err = h.db.CreatePreset(p)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &p)
}

func (h *Hub) ServeDeletePreset(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		httpError(w, ErrNoDatabase)
		return
	}

	if err := h.db.DeletePreset(r.PathValue("name")); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeUpload renders the shared texture, and its mipmaps if enabled, and uploads
// them under the name given by "name".
func (h *Hub) ServeUpload(w http.ResponseWriter, r *http.Request) {
	if h.fs == nil {
		http.Error(w, "uploads are not available", http.StatusServiceUnavailable)
		return
	}

	format := texture.FormatPNG
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = texture.ParseFormat(f); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	name := r.URL.Query().Get("name")
	if err := preset.ValidateName(name); err != nil {
		httpError(w, err)
		return
	}
	key := store.Key("textures", name)

	img, err := h.texture.Image()
	if err != nil {
		httpError(w, err)
		return
	}
	filename, err := store.UploadImage(h.fs, key, img, format, h.secondsCache)
	if err != nil {
		log.Println("upload error:", err)
		httpError(w, err)
		return
	}
	files := []string{filename}

	if h.texture.Options().Mipmaps {
		levels, err := h.texture.Mipmaps()
		if err != nil {
			httpError(w, err)
			return
		}
		filenames, err := store.UploadMipmaps(h.fs, key, levels, format, h.secondsCache)
		if err != nil {
			log.Println("upload error:", err)
			httpError(w, err)
			return
		}
		files = append(files, filenames...)
	}

	writeJSON(w, http.StatusOK, map[string][]string{"files": files})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("encode error:", err)
	}
}

var invalidNoise = [...]error{
	noise.ErrOctaves,
	noise.ErrGain,
	noise.ErrLacunarity,
	noise.ErrFrequency,
	noise.ErrPingPong,
	noise.ErrWarpOctaves,
}

// httpError maps known errors to status codes.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, preset.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, preset.ErrExists):
		status = http.StatusConflict
	case errors.Is(err, ErrNoDatabase):
		status = http.StatusServiceUnavailable
	case errors.Is(err, preset.ErrNameEmpty),
		errors.Is(err, preset.ErrNameLength),
		errors.Is(err, preset.ErrNameInappropriate),
		errors.Is(err, texture.ErrRampSyntax):
		status = http.StatusBadRequest
	}
	for _, invalid := range invalidNoise {
		if errors.Is(err, invalid) {
			status = http.StatusBadRequest
		}
	}
	http.Error(w, err.Error(), status)
}
