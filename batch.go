// SPDX-License-Identifier: EPL-2.0

package audenhance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance/enhance"
)

// ProcessBatch runs every upload through ProcessFile one at a time, in
// order. A failing file is recorded in its Result and the rest still run.
// Uploads are staged in a fresh run directory under Config.TempDir that
// is removed before ProcessBatch returns. The error is only for problems
// that stop the whole batch, such as invalid params or an unusable temp
// directory; a cancelled ctx marks the files not yet started as failed.
func (p *Pipeline) ProcessBatch(ctx context.Context, uploads []Upload, params enhance.Params, obs Observer) ([]Result, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	runDir, err := os.MkdirTemp(p.cfg.TempDir, "audenhance-run-*")
	if err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"function": "Pipeline.ProcessBatch",
		"run_dir":  runDir,
		"files":    len(uploads),
	})

	defer func() {
		if err := os.RemoveAll(runDir); err != nil {
			log.WithError(err).Warn("Failed to remove run directory")
		}
	}()

	log.Info("Batch started")

	results := make([]Result, len(uploads))
	failed := 0

	for i, up := range uploads {
		obs.FileStarted(i, len(uploads), up.Name)

		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Name: up.Name, Err: &StageError{Stage: StageUpload, Name: up.Name, Err: err}}
		} else {
			res = p.processUpload(ctx, runDir, i, up, params, obs)
		}

		if res.Err != nil {
			failed++
			log.WithFields(logrus.Fields{
				"file":  up.Name,
				"stage": StageOf(res.Err),
				"error": res.Err.Error(),
			}).Error("File failed")
		}

		results[i] = res
		obs.FileFinished(i, res)
	}

	log.WithField("failed", failed).Info("Batch finished")

	return results, nil
}

func (p *Pipeline) processUpload(ctx context.Context, runDir string, index int, up Upload, params enhance.Params, obs Observer) Result {
	staged, err := stage(runDir, index, up)
	if err != nil {
		return Result{
			Name:         up.Name,
			Format:       p.cfg.Format,
			DownloadName: DownloadName(up.Name, p.cfg.Format),
			Err:          &StageError{Stage: StageUpload, Name: up.Name, Err: err},
		}
	}

	progress := func(done, total int) {
		obs.ChunkDone(index, up.Name, done, total)
	}

	res, err := p.ProcessFile(ctx, staged, up.Name, params, progress)
	res.Err = err

	return res
}

// stage copies an upload into runDir. The index prefix keeps uploads with
// the same name apart; the original extension picks the decoder.
func stage(runDir string, index int, up Upload) (string, error) {
	if up.Open == nil {
		return "", fmt.Errorf("upload %q has no content", up.Name)
	}

	rc, err := up.Open()
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}
	defer rc.Close()

	ext := filepath.Ext(filepath.Base(up.Name))
	path := filepath.Join(runDir, fmt.Sprintf("%03d_upload%s", index, ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return "", fmt.Errorf("%w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w", err)
	}

	return path, nil
}
