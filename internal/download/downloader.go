package download

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tanq16/docgrab/internal/extract"
	"github.com/tanq16/docgrab/internal/fetch"
	"github.com/tanq16/docgrab/internal/utils"
)

// Downloader grabs every document linked from a single webpage into a local
// directory, one file at a time.
type Downloader struct {
	outputDir string
	cfg       utils.Config
	fetcher   *fetch.Fetcher
	log       zerolog.Logger
}

func New(outputDir string, cfg utils.Config, logger zerolog.Logger) *Downloader {
	if outputDir == "" {
		outputDir = "out"
	}
	client := utils.NewGrabHTTPClient(utils.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		VerifySSL: cfg.VerifySSL,
		UserAgent: cfg.UserAgent,
	})
	return &Downloader{
		outputDir: outputDir,
		cfg:       cfg,
		fetcher:   fetch.New(client, fetch.FlatRetry{Attempts: cfg.MaxRetries}, logger),
		log:       logger,
	}
}

// DownloadFromURL fetches the page, extracts document links, and downloads
// each in turn. Page-level failures abort the run with a *utils.DownloadError
// and no report; per-file failures are recorded and the loop continues.
func (d *Downloader) DownloadFromURL(pageURL string) (*Report, error) {
	runID := uuid.New().String()[:8]
	log := d.log.With().Str("run", runID).Logger()
	log.Info().Str("url", pageURL).Msg("Starting download")

	report := NewReport()
	defer report.finalize()

	if err := os.MkdirAll(d.outputDir, 0755); err != nil {
		return nil, &utils.DownloadError{URL: pageURL, Err: &utils.FileSystemError{Path: d.outputDir, Err: err}}
	}

	resp, err := d.fetcher.Fetch(pageURL)
	if err != nil {
		return nil, &utils.DownloadError{URL: pageURL, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &utils.DownloadError{URL: pageURL, Err: fmt.Errorf("error reading page body: %v", err)}
	}

	links, err := extract.DocumentLinks(pageURL, body, d.cfg.AllowedExtensions)
	if err != nil {
		return nil, &utils.DownloadError{URL: pageURL, Err: err}
	}
	log.Info().Int("count", len(links)).Msg("Found candidate document links")

	for _, fileURL := range links {
		res := d.downloadOne(fileURL)
		report.Record(res)
		switch res.Status {
		case FileStatusSkipped:
			log.Info().Str("file", res.Filename).Msg("Skipping existing file")
		case FileStatusSucceeded:
			log.Info().Str("file", res.Filename).Int64("bytes", res.Size).Msg("Downloaded")
		case FileStatusFailed:
			log.Error().Str("url", fileURL).Err(res.Err).Msg("Download failed")
		}
	}
	return report, nil
}

// downloadOne resolves a single candidate link to an on-disk file. Every
// outcome comes back as a FileResult value, never a propagated error.
func (d *Downloader) downloadOne(fileURL string) FileResult {
	filename := utils.FilenameFromURL(fileURL)
	outputPath := filepath.Join(d.outputDir, filename)

	if _, err := os.Stat(outputPath); err == nil {
		return FileResult{URL: fileURL, Filename: filename, Status: FileStatusSkipped}
	}

	resp, err := d.fetcher.Fetch(fileURL)
	if err != nil {
		return FileResult{URL: fileURL, Filename: filename, Status: FileStatusFailed, Err: err}
	}
	defer resp.Body.Close()

	contentLength, _ := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if contentLength > 0 {
		if err := d.checkSizeBounds(contentLength); err != nil {
			return FileResult{URL: fileURL, Filename: filename, Status: FileStatusFailed, Err: err}
		}
	}

	bytesWritten, err := saveFile(resp.Body, outputPath)
	if err != nil {
		return FileResult{URL: fileURL, Filename: filename, Status: FileStatusFailed, Err: err}
	}
	if err := d.checkSizeBounds(bytesWritten); err != nil {
		os.Remove(outputPath)
		return FileResult{URL: fileURL, Filename: filename, Status: FileStatusFailed, Err: err}
	}
	return FileResult{URL: fileURL, Filename: filename, Status: FileStatusSucceeded, Size: bytesWritten}
}

func (d *Downloader) checkSizeBounds(size int64) error {
	if d.cfg.MinFileSize > 0 && size < d.cfg.MinFileSize {
		return fmt.Errorf("file size %d below configured minimum %d", size, d.cfg.MinFileSize)
	}
	if d.cfg.MaxFileSize > 0 && size > d.cfg.MaxFileSize {
		return fmt.Errorf("file size %d above configured maximum %d", size, d.cfg.MaxFileSize)
	}
	return nil
}
