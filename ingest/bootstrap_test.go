package ingest

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/graph"
)

func TestBootstrap(t *testing.T) {
	var (
		filename = filepath.Join(os.TempDir(), t.Name()+".bolt")
		isSeed   = regexp.MustCompile(`^GRT[0-9]+`).MatchString
		idx      = graph.Build(map[string][]string{
			"GRT0001": {"k1"},
			"GRT0002": {"k2"},
			"GRT0003": {"k1", "k2"},
			"Ext1":    {"k1"},
		}, nil)
	)

	os.Remove(filename)
	defer os.Remove(filename)

	if err := db.WithClient(db.NewBoltConfig(filename), func(client *db.Client) error {
		if err := client.SeedSave(domain.SeedResult{Seed: "GRT0002"}, "earlier-run"); err != nil {
			return err
		}

		n, err := Bootstrap(client, idx, isSeed, nil)
		if err != nil {
			return err
		}
		if expected, actual := 2, n; actual != expected {
			t.Errorf("Expected num new=%v but actual=%v", expected, actual)
		}

		// Re-running adds nothing new.
		if n, err = Bootstrap(client, idx, isSeed, nil); err != nil {
			return err
		}
		if expected, actual := 0, n; actual != expected {
			t.Errorf("Expected num new on rerun=%v but actual=%v", expected, actual)
		}

		seedsFile := filepath.Join(os.TempDir(), t.Name()+".seeds")
		if err := os.WriteFile(seedsFile, []byte("GRT0009\n\n  GRT0001 \n(blank)\n"), 0600); err != nil {
			return err
		}
		defer os.Remove(seedsFile)

		cfg := NewBootstrapConfig()
		cfg.SeedsInputFile = seedsFile
		if n, err = Bootstrap(client, idx, isSeed, cfg); err != nil {
			return err
		}
		if expected, actual := 1, n; actual != expected {
			t.Errorf("Expected num new from seeds file=%v but actual=%v", expected, actual)
		}

		if l, err := client.ToExploreLen(); err != nil {
			return err
		} else if expected, actual := 3, l; actual != expected {
			t.Errorf("Expected queue len=%v but actual=%v", expected, actual)
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}
