// Package report assembles threat-model report PDFs. The orchestrator
// opens a document, walks the title page, summary, input and output
// sections while threading the layout cursor forward, then stamps the
// footers once the final page count is known and serializes the result.
package report

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ericfitz/tmi-report/fonts"
	"github.com/ericfitz/tmi-report/i18n"
	"github.com/ericfitz/tmi-report/layout"
	"github.com/ericfitz/tmi-report/markdown"
	"github.com/ericfitz/tmi-report/model"
	"github.com/ericfitz/tmi-report/observability"
	"github.com/ericfitz/tmi-report/table"
)

// producerName identifies the engine in the PDF metadata.
const producerName = "tmi-report"

const (
	cardGap     = 10.0
	cardIndent  = 8.0
	timeDisplay = "2006-01-02 15:04"
)

type generator struct {
	doc    *fpdf.Fpdf
	engine *layout.Engine
	md     *markdown.Renderer
	tables *table.Renderer
	tr     i18n.TranslateFunc
	log    observability.Logger
	opts   Options
	tm     *model.ThreatModel
}

// Generate renders the threat model into a complete PDF written to w.
// Degraded conditions (missing fonts, broken images, unsupported
// markdown) are logged and substituted; only document-level failures
// return an error.
func Generate(ctx context.Context, tm *model.ThreatModel, opts Options, w io.Writer) error {
	if tm == nil {
		return fmt.Errorf("nil threat model")
	}
	start := time.Now()

	log := opts.Logger
	if log == nil {
		log = observability.NopLogger{}
	}
	tr := opts.Translate
	if tr == nil {
		tr = i18n.Default()
	}

	cfg := layoutConfig(ParsePageSize(opts.PageSize), ParseMarginSize(opts.MarginSize))
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	if doc.Err() {
		return fmt.Errorf("create document: %w", doc.Error())
	}
	doc.SetAutoPageBreak(false, 0)

	set, err := fonts.NewManager(doc, opts.Fonts, log).Load(ctx, opts.Language)
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}

	engine := layout.NewEngine(doc, cfg, set)
	g := &generator{
		doc:    doc,
		engine: engine,
		md:     markdown.NewRenderer(engine, log),
		tables: table.NewRenderer(engine, log),
		tr:     tr,
		log:    log,
		opts:   opts,
		tm:     tm,
	}

	cur := g.titlePage()
	cur = g.summary(cur)
	cur = g.inputs(cur)
	g.outputs(cur)
	g.footers()
	g.metadata()

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Info("report generated",
		observability.String("threat_model", tm.Name),
		observability.Int(observability.FieldPageCount, doc.PageCount()),
		observability.String(observability.FieldDuration, time.Since(start).Round(time.Millisecond).String()),
	)
	return nil
}

// Filename returns the download name for a generated report, replacing
// characters that are unsafe in file names.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "threat-model"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r) || unicode.IsControl(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String() + "-report.pdf"
}

func (g *generator) titlePage() layout.Cursor {
	cur := g.engine.NewPage()
	if len(g.opts.Branding.LogoPNG) > 0 {
		cur = g.drawLogo(cur)
	}

	cur = g.engine.Advance(cur, 120)
	cur = g.engine.DrawWrappedText(cur, g.tm.Name, layout.StyleTitle, 0)
	cur = g.engine.DrawWrappedText(cur, g.tr("report.title", nil), layout.StyleSubtitle, 0)

	if warn := g.opts.Branding.ConfidentialityWarning; warn != "" {
		cur = g.engine.Advance(cur, 24)
		cur = g.engine.DrawWrappedText(cur, warn, layout.StyleBlockquote, 0)
	}
	if class := g.opts.Branding.DataClassification; class != "" {
		cur = g.engine.Advance(cur, 12)
		cur = g.engine.DrawWrappedText(cur, class, layout.StyleLabel, 0)
	}
	return cur
}

// drawLogo embeds the branding logo top-centered. A logo the document
// library rejects is skipped with a warning; the stdlib decode runs
// first so obviously broken bytes never reach the document.
func (g *generator) drawLogo(cur layout.Cursor) layout.Cursor {
	pc, err := png.DecodeConfig(bytes.NewReader(g.opts.Branding.LogoPNG))
	if err != nil {
		g.log.Warn("logo rejected", observability.Error("error", err))
		return cur
	}

	cfg := g.engine.Config()
	w, h := fitToBox(float64(pc.Width), float64(pc.Height), cfg.ContentWidth(), 72)
	g.engine.RegisterImage("logo", g.opts.Branding.LogoPNG)
	if g.doc.Err() {
		g.log.Warn("logo embed failed", observability.Error("error", g.doc.Error()))
		g.doc.ClearError()
		return cur
	}
	x := cfg.Margin + (cfg.ContentWidth()-w)/2
	g.engine.DrawImage("logo", x, cur.Y, w, h)
	return g.engine.Advance(cur, h+24)
}

func (g *generator) summary(cur layout.Cursor) layout.Cursor {
	cur = g.heading(cur, layout.StyleHeading1, g.tr("report.summary.title", nil))

	pairs := []struct{ key, value string }{
		{"report.summary.owner", g.tm.Owner},
		{"report.summary.version", g.tm.Version},
		{"report.summary.status", g.tm.Status},
		{"report.summary.created", formatTime(g.tm.CreatedAt)},
		{"report.summary.modified", formatTime(g.tm.ModifiedAt)},
		{"report.summary.tags", strings.Join(g.tm.Tags, ", ")},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		cur = g.engine.DrawKeyValuePair(cur, g.tr(p.key, nil)+":", p.value,
			layout.StyleLabel, layout.StyleValue, 0)
	}

	if g.tm.Description != "" {
		cur = g.engine.Advance(cur, 6)
		cur = g.engine.DrawWrappedText(cur, g.tr("report.summary.description", nil)+":", layout.StyleLabel, 0)
		cur = g.md.Render(cur, g.tm.Description)
	}
	return cur
}

// inputs renders the Assets, Documents and Repositories sections. The
// whole group is omitted when none of the three has reportable entries.
func (g *generator) inputs(cur layout.Cursor) layout.Cursor {
	assets := g.tm.ReportedAssets()
	docs := g.tm.ReportedDocuments()
	repos := g.tm.ReportedRepositories()
	if len(assets) == 0 && len(docs) == 0 && len(repos) == 0 {
		return cur
	}
	cur = g.heading(cur, layout.StyleHeading1, g.tr("report.sections.inputs", nil))

	if len(assets) > 0 {
		cur = g.heading(cur, layout.StyleHeading2, g.tr("report.sections.assets", nil))
		cols := []table.Column{
			{Title: g.tr("report.table.name", nil), Proportion: 0.4},
			{Title: g.tr("report.table.type", nil), Proportion: 0.3},
			{Title: g.tr("report.table.sensitivity", nil), Proportion: 0.3},
		}
		rows := make([][]string, len(assets))
		for i, a := range assets {
			rows[i] = []string{a.Name, a.Type, a.Sensitivity}
		}
		cur = g.tables.Draw(cur, cols, rows)
		for _, a := range assets {
			cur = g.detailCard(cur, a.Name, a.Description, a.Metadata)
		}
	}

	if len(docs) > 0 {
		cur = g.heading(cur, layout.StyleHeading2, g.tr("report.sections.documents", nil))
		cols := []table.Column{
			{Title: g.tr("report.table.name", nil), Proportion: 0.3},
			{Title: g.tr("report.table.url", nil), Proportion: 0.35},
			{Title: g.tr("report.table.description", nil), Proportion: 0.35},
		}
		rows := make([][]string, len(docs))
		for i, d := range docs {
			rows[i] = []string{d.Name, d.URL, d.Description}
		}
		cur = g.tables.Draw(cur, cols, rows)
	}

	if len(repos) > 0 {
		cur = g.heading(cur, layout.StyleHeading2, g.tr("report.sections.repositories", nil))
		cols := []table.Column{
			{Title: g.tr("report.table.name", nil), Proportion: 0.35},
			{Title: g.tr("report.table.type", nil), Proportion: 0.2},
			{Title: g.tr("report.table.url", nil), Proportion: 0.45},
		}
		rows := make([][]string, len(repos))
		for i, r := range repos {
			rows[i] = []string{r.Name, r.Type, r.URL}
		}
		cur = g.tables.Draw(cur, cols, rows)
		for _, r := range repos {
			cur = g.detailCard(cur, r.Name, r.Description, r.Metadata)
		}
	}
	return cur
}

// outputs renders the Diagrams, Threats and Notes sections. The whole
// group is omitted when none of the three has reportable entries.
func (g *generator) outputs(cur layout.Cursor) layout.Cursor {
	diagrams := g.tm.ReportedDiagrams()
	threats := g.tm.ReportedThreats()
	notes := g.tm.ReportedNotes()
	if len(diagrams) == 0 && len(threats) == 0 && len(notes) == 0 {
		return cur
	}
	cur = g.heading(cur, layout.StyleHeading1, g.tr("report.sections.outputs", nil))

	if len(diagrams) > 0 {
		cur = g.heading(cur, layout.StyleHeading2, g.tr("report.sections.diagrams", nil))
		for i, d := range diagrams {
			cur = g.diagramPage(d, i)
		}
	}

	if len(threats) > 0 {
		cur = g.heading(cur, layout.StyleHeading2, g.tr("report.sections.threats", nil))
		for _, th := range threats {
			cur = g.threatCard(cur, th)
		}
	}

	if len(notes) > 0 {
		cur = g.heading(cur, layout.StyleHeading2, g.tr("report.sections.notes", nil))
		for _, n := range notes {
			cur = g.noteCard(cur, n)
		}
	}
	return cur
}

// diagramPage gives every diagram its own page: title, the rasterized
// drawing scaled to the content box, then the description. A diagram
// whose image cannot be produced keeps its page with a placeholder line.
func (g *generator) diagramPage(d model.Diagram, idx int) layout.Cursor {
	cur := g.engine.NewPage()
	cfg := g.engine.Config()

	cur = g.engine.DrawWrappedText(cur, d.Name, layout.StyleHeading3, 0)
	if d.Type != "" {
		cur = g.engine.DrawKeyValuePair(cur, g.tr("report.table.type", nil)+":", d.Type,
			layout.StyleLabel, layout.StyleValue, 0)
	}
	cur = g.engine.Advance(cur, 8)

	data, wPt, hPt, err := rasterizeSVG(d.SVG)
	if err != nil {
		g.log.Warn("diagram rasterization failed",
			observability.String(observability.FieldDiagram, d.Name),
			observability.Error("error", err),
		)
		cur = g.engine.DrawWrappedText(cur,
			g.tr("report.diagrams.renderFailed", map[string]any{"name": d.Name}),
			layout.StylePlaceholder, 0)
	} else {
		name := "diagram-" + strconv.Itoa(idx)
		g.engine.RegisterImage(name, data)
		w, h := fitToBox(wPt, hPt, cfg.ContentWidth(), cur.Y-cfg.BottomBound())
		x := cfg.Margin + (cfg.ContentWidth()-w)/2
		g.engine.DrawImage(name, x, cur.Y, w, h)
		cur = g.engine.Advance(cur, h)
		g.log.Debug("diagram embedded",
			observability.String(observability.FieldDiagram, d.Name),
			observability.Int(observability.FieldBytes, len(data)),
		)
	}

	if d.Description != "" {
		cur = g.engine.Advance(cur, 10)
		cur = g.engine.DrawWrappedText(cur, d.Description, layout.StyleBody, 0)
	}
	return cur
}

// threatCard renders one threat as a titled block of key/value pairs.
func (g *generator) threatCard(cur layout.Cursor, th model.Threat) layout.Cursor {
	cur = g.engine.EnsureSpace(cur, layout.StyleHeading3.Leading()+3*layout.StyleBody.Leading()+cardGap)
	cur = g.engine.Advance(cur, cardGap)
	cur = g.engine.DrawWrappedText(cur, th.Title, layout.StyleHeading3, 0)

	pairs := []struct{ key, value string }{
		{"report.threats.category", th.Category},
		{"report.threats.severity", th.Severity},
		{"report.threats.likelihood", th.Likelihood},
		{"report.threats.impact", th.Impact},
		{"report.threats.riskScore", formatScore(th.RiskScore)},
		{"report.threats.status", th.Status},
		{"report.threats.assignedTo", th.AssignedTo},
		{"report.threats.mitigation", th.Mitigation},
		{"report.threats.description", th.Description},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		cur = g.engine.DrawKeyValuePair(cur, g.tr(p.key, nil)+":", p.value,
			layout.StyleLabel, layout.StyleValue, cardIndent)
	}
	return cur
}

// noteCard renders one note title followed by its markdown body.
func (g *generator) noteCard(cur layout.Cursor, n model.Note) layout.Cursor {
	cur = g.engine.EnsureSpace(cur, layout.StyleHeading3.Leading()+3*layout.StyleBody.Leading()+cardGap)
	cur = g.engine.Advance(cur, cardGap)
	cur = g.engine.DrawWrappedText(cur, n.Title, layout.StyleHeading3, 0)
	return g.md.Render(cur, n.Content)
}

// detailCard renders a named description plus sorted metadata pairs,
// skipping entities that have neither.
func (g *generator) detailCard(cur layout.Cursor, name, description string, meta map[string]string) layout.Cursor {
	if description == "" && len(meta) == 0 {
		return cur
	}
	cur = g.engine.EnsureSpace(cur, layout.StyleLabel.Leading()+2*layout.StyleBody.Leading()+cardGap)
	cur = g.engine.Advance(cur, cardGap)
	cur = g.engine.DrawWrappedText(cur, name, layout.StyleLabel, 0)
	if description != "" {
		cur = g.engine.DrawWrappedText(cur, description, layout.StyleBody, cardIndent)
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cur = g.engine.DrawKeyValuePair(cur, k+":", meta[k],
			layout.StyleLabel, layout.StyleValue, cardIndent)
	}
	return cur
}

// heading draws a section heading, reserving room for the heading plus
// two body lines so a title is never stranded at a page bottom.
func (g *generator) heading(cur layout.Cursor, st layout.Style, text string) layout.Cursor {
	need := st.SpaceBefore + st.Leading() + st.SpaceAfter + 2*layout.StyleBody.Leading()
	cur = g.engine.EnsureSpace(cur, need)
	cur = g.engine.Advance(cur, st.SpaceBefore)
	cur = g.engine.DrawWrappedText(cur, text, st, 0)
	return g.engine.Advance(cur, st.SpaceAfter)
}

// footers stamps every page once the count is final: the classification
// centered and the page indicator right-aligned inside the reserved
// footer band.
func (g *generator) footers() {
	total := g.doc.PageCount()
	cfg := g.engine.Config()
	st := layout.StyleFooter
	y := cfg.Margin + (footerReserve+st.FontSize)/2

	for page := 1; page <= total; page++ {
		g.doc.SetPage(page)
		if class := g.opts.Branding.DataClassification; class != "" {
			w := g.engine.TextWidth(class, st)
			g.engine.DrawTextLine(class, (cfg.PageWidth-w)/2, y, st)
		}
		text := g.tr("report.footer.page", map[string]any{"page": page, "pages": total})
		w := g.engine.TextWidth(text, st)
		g.engine.DrawTextLine(text, cfg.PageWidth-cfg.Margin-w, y, st)
	}
}

func (g *generator) metadata() {
	g.doc.SetTitle(g.tm.Name, true)
	g.doc.SetAuthor(g.tm.Owner, true)
	g.doc.SetSubject(g.tr("report.title", nil), true)
	g.doc.SetCreator(producerName, true)
	g.doc.SetProducer(producerName, true)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeDisplay)
}

func formatScore(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
