package notify

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fotline/internal/report"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`<h2>Project payroll fund analysis</h2>

<h3>Run details</h3>
<ul>
  <li><strong>Run date:</strong> {{.RunDate}}</li>
  <li><strong>Status:</strong> all steps completed without errors</li>
  <li><strong>Results:</strong> stored in the project_fot table</li>
</ul>

<h3>Results per project</h3>
<table border="1" style="border-collapse: collapse; width: 100%;">
  <tr style="background-color: #f2f2f2;">
    <th>project_id</th>
    <th>total_hours</th>
    <th>total_payment</th>
  </tr>
{{- range .Rows}}
  <tr>
    <td>{{.ProjectID}}</td>
    <td>{{.TotalHours}}</td>
    <td>{{.TotalPayment}}</td>
  </tr>
{{- end}}
</table>

<h3>Attached files</h3>
<ul>
{{- range .Attachments}}
  <li><strong>{{.}}</strong></li>
{{- end}}
</ul>

<hr>
<p style="color: #666; font-size: 12px;">
  Automated notification from the payroll analysis pipeline.<br>
  Sent at: {{.SentAt}}
</p>
`))

type summaryRow struct {
	ProjectID    int
	TotalHours   float64
	TotalPayment string
}

type summaryData struct {
	RunDate     string
	SentAt      string
	Rows        []summaryRow
	Attachments []string
}

// Notifier composes and sends the run-completion email.
type Notifier struct {
	sender Sender
	now    func() time.Time
}

// NewNotifier creates a notifier on top of a sender.
func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender, now: time.Now}
}

// Notify sends the HTML summary with the report files attached. When the
// full message cannot be composed or delivered, it sends a minimal status
// email without attachments and still returns the original error, so the
// step is recorded as failed and the degraded delivery stays visible.
func (n *Notifier) Notify(ctx context.Context, runDate time.Time, art *report.Artifacts) error {
	msg, err := n.compose(runDate, art)
	if err == nil {
		if err = n.sender.Send(ctx, msg); err == nil {
			log.Printf("notify: report email sent with %d attachments", len(msg.Attachments))
			return nil
		}
	}

	log.Printf("notify: %v, sending fallback status email", err)
	fallback := &Message{
		Subject:  "Project payroll analysis - completed (no attachments)",
		HTMLBody: fallbackBody(runDate, err),
	}
	if fbErr := n.sender.Send(ctx, fallback); fbErr != nil {
		log.Printf("notify: fallback email failed: %v", fbErr)
	}
	return err
}

// NotifyFailure sends a best-effort plain notification about a failed run.
// Delivery problems are logged, never propagated; the run is already failed.
func (n *Notifier) NotifyFailure(ctx context.Context, runID uuid.UUID, runErr error) {
	msg := &Message{
		Subject: "Project payroll analysis - run failed",
		HTMLBody: fmt.Sprintf(
			"<h3>Project payroll analysis failed</h3>\n<p>Run: %s</p>\n<p>Error: %s</p>\n<p>Time: %s</p>\n",
			runID,
			template.HTMLEscapeString(runErr.Error()),
			n.now().Format("2006-01-02 15:04:05"),
		),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		log.Printf("notify: failure email not delivered: %v", err)
	}
}

func (n *Notifier) compose(runDate time.Time, art *report.Artifacts) (*Message, error) {
	attachments := []string{art.ReportFile, art.CSVFile}
	names := make([]string, 0, len(attachments))
	for _, path := range attachments {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("attach %s: %w", path, err)
		}
		names = append(names, filepath.Base(path))
	}

	data := summaryData{
		RunDate:     runDate.Format("2006-01-02"),
		SentAt:      n.now().Format("2006-01-02 15:04:05"),
		Rows:        make([]summaryRow, 0, len(art.Rows)),
		Attachments: names,
	}
	for _, row := range art.Rows {
		data.Rows = append(data.Rows, summaryRow{
			ProjectID:    row.ProjectID,
			TotalHours:   row.TotalHours,
			TotalPayment: row.TotalPayment.StringFixed(2),
		})
	}

	var body strings.Builder
	if err := summaryTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}

	return &Message{
		Subject:     "Project payroll fund - analysis report",
		HTMLBody:    body.String(),
		Attachments: attachments,
	}, nil
}

func fallbackBody(runDate time.Time, cause error) string {
	return fmt.Sprintf(
		"<h3>Project payroll analysis completed</h3>\n"+
			"<p>Run date: %s</p>\n"+
			"<p>All pipeline steps finished; results are stored in the project_fot table.</p>\n"+
			"<p><strong>Note:</strong> the result files could not be attached: %s</p>\n",
		runDate.Format("2006-01-02"),
		template.HTMLEscapeString(cause.Error()),
	)
}
