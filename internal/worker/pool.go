// Package worker provides background preview analysis for saved playlists.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

// Job is one preview-analysis task.
type Job struct {
	PlaylistID string
	TrackID    string
	PreviewURL string
}

// Pool runs preview analysis off the request path and backfills energy values
// into the repository.
type Pool struct {
	repo ports.PlaylistRepository
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a pool with the given queue size. Workers start on Start.
func NewPool(repo ports.PlaylistRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit enqueues every track of a saved playlist that carries a preview URL.
// It reports false when the queue overflowed and at least one job was dropped.
func (p *Pool) Submit(playlistID string, tracks []domain.TrackRecord) bool {
	ok := true
	for _, t := range tracks {
		if t.PreviewURL == "" {
			continue
		}
		if !p.submitOne(Job{PlaylistID: playlistID, TrackID: t.ID, PreviewURL: t.PreviewURL}) {
			ok = false
		}
	}
	return ok
}

func (p *Pool) submitOne(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		log.Printf("WARN worker: dropping analysis job for %s", job.TrackID)
		return false
	}
}

func (p *Pool) processJob(job Job) {
	energy, err := AnalyzePreviewFunc(job.PreviewURL)
	if err != nil {
		log.Printf("WARN worker: preview analysis for %s failed: %v", job.TrackID, err)
		return
	}
	if err := p.repo.UpdateTrackEnergy(context.Background(), job.PlaylistID, job.TrackID, energy); err != nil {
		log.Printf("WARN worker: energy update for %s failed: %v", job.TrackID, err)
		return
	}
	log.Printf("DEBUG worker: track %s energy %.3f", job.TrackID, energy)
}
