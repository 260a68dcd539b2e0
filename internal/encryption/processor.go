package encryption

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/fileutil"
)

// Processor is an encryption session: it binds one set of key material to the
// runtime configuration and processes files against it. Every cipher operation
// goes through an explicit Processor, so independent sessions cannot share
// ambient key state.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// material is the session key material
	material Material

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a Processor for the given configuration and material.
// Material lengths are validated here, before any file is touched.
func NewProcessor(cfg *config.Config, material Material) (*Processor, error) {
	if err := material.Validate(); err != nil {
		return nil, err
	}

	return &Processor{
		cfg:      cfg,
		material: material,
		results:  make(chan Result, len(cfg.Files)),
	}, nil
}

// Mode returns the IV handling mode for this session.
func (p *Processor) Mode() CipherMode {
	if p.cfg.SharedIV {
		return ModeSharedIV
	}

	return ModeFileIV
}

// ProcessFiles concurrently encrypts or decrypts all configured files.
// Returns the number of successfully processed files, the number of errors,
// and the total output size.
//
//nolint:cyclop
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				totalSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt reads plaintext from reader and writes ciphertext to writer.
// In ModeFileIV a fresh random IV is generated and written ahead of the
// ciphertext; in ModeSharedIV the session IV is used and nothing is prepended.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer) error {
	iv := p.material.IV

	if p.Mode() == ModeFileIV {
		iv = make([]byte, IVSize)
		if _, err := io.ReadFull(rand.Reader, iv); err != nil {
			return fmt.Errorf("generating IV: %w", err)
		}

		if _, err := writer.Write(iv); err != nil {
			return fmt.Errorf("writing IV: %w", err)
		}
	}

	return EncryptStream(reader, writer, Material{Key: p.material.Key, IV: iv})
}

// decrypt reads ciphertext from reader and writes plaintext to writer,
// recovering the IV from the file header or the session material depending
// on the mode.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer) error {
	iv := p.material.IV

	if p.Mode() == ModeFileIV {
		iv = make([]byte, IVSize)
		if _, err := io.ReadFull(reader, iv); err != nil {
			return fmt.Errorf("reading IV: %w", err)
		}
	}

	return DecryptStream(reader, writer, Material{Key: p.material.Key, IV: iv})
}

// processFile handles the encryption or decryption of a single file.
// Output goes to a temporary file that is renamed into place on success, so a
// failure never leaves a truncated result behind.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	if p.cfg.Decrypt {
		err = p.decrypt(inFile, tc.TmpFile)
	} else {
		err = p.encrypt(inFile, tc.TmpFile)
	}

	if err != nil {
		return 0, err
	}

	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)

	if tc.IsExec {
		perm |= 0o111
	}

	if err := os.Chmod(tc.TmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	if err := os.Rename(tc.TmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.EncryptSuffix

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.EncryptSuffix)
		ext = p.cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
