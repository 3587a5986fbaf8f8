package jacket

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the jackets built by a batch. Relative paths are resolved
// against the directory holding the manifest.
//
//	output: build
//	platform: 13
//	songs:
//	  - id: 1001
//	    small: 1001/jacket_s.pvr
//	    medium: 1001/jacket.png
//	    width: 264
//	    height: 264
type Manifest struct {
	Output   string         `yaml:"output"`
	Platform *int           `yaml:"platform"`
	Songs    []ManifestSong `yaml:"songs"`
}

// ManifestSong is one song in a Manifest.
type ManifestSong struct {
	ID       int    `yaml:"id"`
	Platform *int   `yaml:"platform"`
	Small    string `yaml:"small"`
	Medium   string `yaml:"medium"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Output   string `yaml:"output"`
}

func resolve(base, file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, filepath.Clean(file))
}

func platform(values ...*int) (byte, error) {
	for _, v := range values {
		if v == nil {
			continue
		}
		if *v < 0 || *v > 0xff {
			return 0, fmt.Errorf("jacket: platform %d out of range", *v)
		}
		return byte(*v), nil
	}
	return Platform, nil
}

// LoadManifest reads a manifest from file.
func LoadManifest(file string) (*Manifest, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("jacket: %s: %w", file, err)
	}

	base := filepath.Dir(file)
	m.Output = resolve(base, m.Output)
	for i := range m.Songs {
		s := &m.Songs[i]
		s.Small = resolve(base, s.Small)
		s.Medium = resolve(base, s.Medium)
		s.Output = resolve(base, s.Output)
	}

	return &m, nil
}

// Jobs returns a Job for every song in the manifest.
func (m *Manifest) Jobs() ([]Job, error) {
	seen := make(map[int]struct{}, len(m.Songs))
	jobs := make([]Job, 0, len(m.Songs))
	for _, s := range m.Songs {
		if err := validSongID(s.ID); err != nil {
			return nil, err
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("jacket: song %d listed more than once", s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Small == "" || s.Medium == "" {
			return nil, fmt.Errorf("jacket: song %d needs both a small and a medium jacket", s.ID)
		}

		p, err := platform(s.Platform, m.Platform)
		if err != nil {
			return nil, err
		}

		output := s.Output
		if output == "" {
			output = m.Output
		}

		jobs = append(jobs, Job{
			SongID:       s.ID,
			Platform:     p,
			Small:        s.Small,
			Medium:       s.Medium,
			MediumWidth:  s.Width,
			MediumHeight: s.Height,
			Output:       output,
		})
	}
	return jobs, nil
}
