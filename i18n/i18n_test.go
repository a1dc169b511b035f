package i18n

import "testing"

func TestDefaultLookup(t *testing.T) {
	tr := Default()
	if got := tr("report.sections.threats", nil); got != "Threats" {
		t.Errorf("translate = %q, want Threats", got)
	}
}

func TestDefaultParamSubstitution(t *testing.T) {
	tr := Default()
	got := tr("report.footer.page", map[string]any{"page": 3, "pages": 12})
	if got != "Page 3 of 12" {
		t.Errorf("translate = %q, want %q", got, "Page 3 of 12")
	}
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	tr := Default()
	if got := tr("report.no.such.key", nil); got != "report.no.such.key" {
		t.Errorf("translate = %q, want the key back", got)
	}
}

func TestTableCustomCatalog(t *testing.T) {
	tr := Table(map[string]string{"greeting": "Hallo {name}"})
	if got := tr("greeting", map[string]any{"name": "Welt"}); got != "Hallo Welt" {
		t.Errorf("translate = %q, want %q", got, "Hallo Welt")
	}
}
