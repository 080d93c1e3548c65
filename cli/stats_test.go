package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/use-agent/chartshot/batch"
	"github.com/use-agent/chartshot/models"
)

func TestRunStats(t *testing.T) {
	root := t.TempDir()

	ledger, err := batch.LoadLedger(batch.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	okRec := models.NewRecord("https://a.example")
	okRec.HasChart = true
	okRec.HasLabel = true
	ledger.Upsert(okRec)
	ledger.Upsert(models.NewErrorRecord("https://b.example", "goto failed"))
	if err := ledger.Save(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runStats(root, &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Records:    2", "OK:         1", "Errors:     1", "With chart: 1", "With label: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestRunStats_EmptyLedger(t *testing.T) {
	root := t.TempDir()

	var buf bytes.Buffer
	if err := runStats(root, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Records:    0") {
		t.Errorf("expected zero records for a missing ledger:\n%s", buf.String())
	}
}
