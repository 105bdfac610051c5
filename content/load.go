package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eringen/skillsite/card"
)

//go:embed default.yaml
var defaultContent []byte

// filePattern matches content files below a content directory.
const filePattern = "**/*.{yaml,yml,toml}"

type fileSpec struct {
	Pages []pageSpec `koanf:"pages" toml:"pages"`
}

type pageSpec struct {
	Path        string     `koanf:"path" toml:"path"`
	Title       string     `koanf:"title" toml:"title"`
	Description string     `koanf:"description" toml:"description"`
	Intro       string     `koanf:"intro" toml:"intro"`
	Cards       []cardSpec `koanf:"cards" toml:"cards"`
}

type cardSpec struct {
	ID              string    `koanf:"id" toml:"id"`
	Type            string    `koanf:"type" toml:"type"`
	Title           string    `koanf:"title" toml:"title"`
	Subtitle        string    `koanf:"subtitle" toml:"subtitle"`
	Icon            string    `koanf:"icon" toml:"icon"`
	HoverIcon       string    `koanf:"hoverIcon" toml:"hoverIcon"`
	BackgroundImage string    `koanf:"backgroundImage" toml:"backgroundImage"`
	HoverImage      string    `koanf:"hoverImage" toml:"hoverImage"`
	Href            string    `koanf:"href" toml:"href"`
	Style           styleSpec `koanf:"style" toml:"style"`
}

type styleSpec struct {
	Height       size `koanf:"height" toml:"height"`
	Width        size `koanf:"width" toml:"width"`
	TitleSize    size `koanf:"titleSize" toml:"titleSize"`
	SubtitleSize size `koanf:"subtitleSize" toml:"subtitleSize"`
	TitleOffset  size `koanf:"titleOffset" toml:"titleOffset"`
	IconSize     size `koanf:"iconSize" toml:"iconSize"`
}

// size accepts both strings and numbers so `titleSize: 30` works in every
// format. koanf converts numbers itself; TOML needs the hook below.
type size string

func (s *size) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*s = size(x)
	case int64:
		*s = size(strconv.FormatInt(x, 10))
	case float64:
		*s = size(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("size: unsupported value %v (%T)", v, v)
	}
	return nil
}

func (c cardSpec) config() card.Config {
	return card.Config{
		Variant:         card.Variant(c.Type),
		Title:           c.Title,
		Subtitle:        c.Subtitle,
		Icon:            c.Icon,
		HoverIcon:       c.HoverIcon,
		BackgroundImage: c.BackgroundImage,
		HoverImage:      c.HoverImage,
		Href:            c.Href,
		Style: card.Style{
			Height:       string(c.Style.Height),
			Width:        string(c.Style.Width),
			TitleSize:    string(c.Style.TitleSize),
			SubtitleSize: string(c.Style.SubtitleSize),
			TitleOffset:  string(c.Style.TitleOffset),
			IconSize:     string(c.Style.IconSize),
		},
	}
}

func (p pageSpec) page() Page {
	page := Page{
		Path:        p.Path,
		Title:       p.Title,
		Description: p.Description,
		Intro:       p.Intro,
	}
	for _, c := range p.Cards {
		page.Cards = append(page.Cards, Entry{ID: c.ID, Card: c.config()})
	}
	return page
}

// bytesProvider feeds an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytesProvider does not support Read()")
}

// Default returns the catalog embedded in the binary.
func Default() (*Site, error) {
	return Parse(defaultContent, ".yaml")
}

// Parse decodes a single content document. ext selects the format:
// ".yaml"/".yml" or ".toml".
func Parse(data []byte, ext string) (*Site, error) {
	specs, err := decode(data, ext)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return build(specs)
}

// Load reads the catalog at path. An empty path selects the embedded
// default; a directory is searched recursively for YAML and TOML files,
// which are merged in lexical order.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	files, err := Files(path)
	if err != nil {
		return nil, err
	}

	var specs []pageSpec
	for _, f := range files {
		var ps []pageSpec
		switch strings.ToLower(filepath.Ext(f)) {
		case ".yaml", ".yml":
			ps, err = decodeYAML(file.Provider(f))
		default:
			var data []byte
			if data, err = os.ReadFile(f); err == nil {
				ps, err = decode(data, filepath.Ext(f))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", f, err)
		}
		specs = append(specs, ps...)
	}
	return build(specs)
}

// Files lists the content files Load would read for path.
func Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := doublestar.FilepathGlob(filepath.Join(path, filePattern))
	if err != nil {
		return nil, fmt.Errorf("content: glob %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("content: no content files in %s", path)
	}
	sort.Strings(files)
	return files, nil
}

func decode(data []byte, ext string) ([]pageSpec, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return decodeYAML(bytesProvider(data))
	case ".toml":
		var f fileSpec
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, err
		}
		return f.Pages, nil
	}
	return nil, fmt.Errorf("unsupported content format %q", ext)
}

func decodeYAML(p koanf.Provider) ([]pageSpec, error) {
	k := koanf.New(".")
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, err
	}
	var f fileSpec
	if err := k.Unmarshal("", &f); err != nil {
		return nil, err
	}
	return f.Pages, nil
}

func build(specs []pageSpec) (*Site, error) {
	pages := make([]Page, len(specs))
	for i, p := range specs {
		pages[i] = p.page()
	}
	s, err := newSite(pages)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return s, nil
}
