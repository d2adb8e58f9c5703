package output

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/explorer"
)

// FileSink writes exploration output into a results directory: one path
// table per seed plus the shared collaborator and stronger collaboration
// tables.
type FileSink struct {
	Dir string

	collaborators *table
	stronger      *table
	seed          *table
}

// NewFileSink creates dir if necessary and opens the shared tables.  When
// appendResults is set the collaborator tables keep the rows of earlier runs,
// so seeds finished by a previous run stay listed when a run is resumed.
func NewFileSink(dir string, appendResults bool) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating results directory %q", dir)
	}
	s := &FileSink{
		Dir: dir,
	}
	var err error
	if s.collaborators, err = openTable(filepath.Join(dir, CollaboratorsFile), appendResults); err != nil {
		return nil, err
	}
	if s.stronger, err = openTable(filepath.Join(dir, StrongerFile), appendResults); err != nil {
		s.collaborators.Close()
		return nil, err
	}
	log.WithField("dir", dir).WithField("append", appendResults).Debug("Writing results")
	return s, nil
}

func (s *FileSink) BeginSeed(seed string) error {
	if s.seed != nil {
		if err := s.seed.Close(); err != nil {
			return err
		}
	}
	var err error
	s.seed, err = createTable(filepath.Join(s.Dir, SeedPathsFile(seed)))
	return err
}

func (s *FileSink) Path(p domain.Path) error {
	if s.seed == nil {
		return errors.Errorf("path %v received outside of a seed", p)
	}
	return s.seed.Write(p.Record())
}

func (s *FileSink) EndSeed(result domain.SeedResult) error {
	if s.seed != nil {
		err := s.seed.Close()
		s.seed = nil
		if err != nil {
			return err
		}
	}
	if err := writeResult(s.collaborators.w, s.stronger.w, result); err != nil {
		return errors.Wrapf(err, "writing results of seed %q", result.Seed)
	}
	// Flush so a stopped run leaves complete rows for finished seeds.
	s.collaborators.w.Flush()
	s.stronger.w.Flush()
	return multierr.Append(s.collaborators.w.Error(), s.stronger.w.Error())
}

// Close flushes and closes every open table.
func (s *FileSink) Close() error {
	var err error
	if s.seed != nil {
		err = multierr.Append(err, s.seed.Close())
		s.seed = nil
	}
	err = multierr.Append(err, s.collaborators.Close())
	err = multierr.Append(err, s.stronger.Close())
	return err
}

var _ explorer.Sink = (*FileSink)(nil)
