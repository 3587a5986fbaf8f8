package jacket

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"  // medium jackets may be GIF
	_ "image/jpeg" // or JPEG
	_ "image/png"  // or PNG
	"os"
	"path/filepath"
	"strings"

	"github.com/deretore/jacket/bundle"
	"github.com/deretore/jacket/texture"
)

// Job describes one jacket bundle to build.
type Job struct {
	SongID   int
	Platform byte
	// Small is a PVR file holding the ETC1 texture.
	Small string
	// Medium is a DDS file holding the RGB565 texture, or an image that is
	// converted to RGB565.
	Medium string
	// MediumWidth and MediumHeight scale an image Medium; zero keeps the
	// image size. They are ignored for DDS files.
	MediumWidth  int
	MediumHeight int
	// Output is the bundle file to write. If it is a directory the bundle
	// is written there using the runtime's file name.
	Output string
}

func validSongID(id int) error {
	if id < 0 || id > bundle.MaxSongID {
		return fmt.Errorf("jacket: song id %d out of range", id)
	}
	return nil
}

type task struct {
	job    Job
	small  int64
	medium int64
}

func loadSmall(file string) (*texture.Texture, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(file)) {
	case ".pvr":
		return texture.ReadPVR(bufio.NewReader(f))
	default:
		return nil, fmt.Errorf("jacket: %s: small jacket must be a PVR file", file)
	}
}

func loadMedium(file string, width, height int) (*texture.Texture, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(file)) == ".dds" {
		return texture.ReadDDS(bufio.NewReader(f))
	}

	m, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("jacket: %s: %w", file, err)
	}
	return texture.EncodeRGB565(m, width, height)
}

func outputFile(job *Job) string {
	if info, err := os.Stat(job.Output); err == nil && info.IsDir() {
		return filepath.Join(job.Output, bundle.BundleName(job.SongID))
	}
	if job.Output == "" {
		return bundle.BundleName(job.SongID)
	}
	return job.Output
}

func (t *task) request() (*bundle.Request, error) {
	small, err := loadSmall(t.job.Small)
	if err != nil {
		return nil, err
	}
	medium, err := loadMedium(t.job.Medium, t.job.MediumWidth, t.job.MediumHeight)
	if err != nil {
		return nil, err
	}
	return &bundle.Request{
		SongID:   t.job.SongID,
		Platform: t.job.Platform,
		Small:    small.Source(t.small),
		Medium:   medium.Source(t.medium),
	}, nil
}

func writeBundle(file string, r *bundle.Request) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		// A partial bundle is never valid
		if err != nil {
			os.Remove(file)
		}
	}()

	w := bufio.NewWriter(f)
	if err = bundle.Encode(w, r); err != nil {
		return err
	}
	return w.Flush()
}

func (j *Jacket) build(t *task) error {
	r, err := t.request()
	if err != nil {
		return err
	}

	file := outputFile(&t.job)
	if err := writeBundle(file, r); err != nil {
		return err
	}

	j.logger.Printf("Wrote \"%s\" (%s, small %s %dx%d, medium %s %dx%d)\n",
		file, bundle.CABName(r.SongID),
		r.Small.Format, r.Small.Width, r.Small.Height,
		r.Medium.Format, r.Medium.Width, r.Medium.Height)

	return nil
}

// Build builds a single jacket bundle.
func (j *Jacket) Build(job Job) error {
	if err := validSongID(job.SongID); err != nil {
		return err
	}
	small, medium, err := j.catalog.PathIDs(job.SongID)
	if err != nil {
		return err
	}
	return j.build(&task{job: job, small: small, medium: medium})
}
