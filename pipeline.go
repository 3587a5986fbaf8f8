package jacket

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sync"
)

func (j *Jacket) findTasks(ctx context.Context, jobs []Job) (<-chan *task, <-chan error, error) {
	out := make(chan *task)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, job := range jobs {
			// Only this goroutine touches the catalog
			small, medium, err := j.catalog.PathIDs(job.SongID)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- &task{job: job, small: small, medium: medium}:
			case <-ctx.Done():
				errc <- errors.New("batch cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (j *Jacket) buildWorker(ctx context.Context, in <-chan *task) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for t := range in {
			if err := j.build(t); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// BuildAll builds every job, several at a time. It stops at the first error.
func (j *Jacket) BuildAll(jobs []Job) error {
	for _, job := range jobs {
		if err := validSongID(job.SongID); err != nil {
			return err
		}
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	tasks, errc, err := j.findTasks(ctx, jobs)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < runtime.NumCPU(); i++ {
		errc, err := j.buildWorker(ctx, tasks)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// Batch builds every jacket listed in the manifest file.
func (j *Jacket) Batch(file string) error {
	m, err := LoadManifest(file)
	if err != nil {
		return err
	}

	if m.Output != "" {
		if err := os.MkdirAll(m.Output, 0755); err != nil {
			return err
		}
	}

	jobs, err := m.Jobs()
	if err != nil {
		return err
	}

	j.logger.Printf("Building %d jackets from \"%s\"\n", len(jobs), file)

	return j.BuildAll(jobs)
}
