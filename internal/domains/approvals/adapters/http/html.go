package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/approval-api/internal/domains/approvals/application/types"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
)

// The review surface is deliberately minimal: a table of pending orders with
// POST forms per action, and one-paragraph result pages.

var pendingTemplate = template.Must(template.New("pending").Funcs(template.FuncMap{
	"vendorCode": domain.VendorCode,
}).Parse(`<html><head><meta charset="utf-8"><title>Pending review</title></head>
<body style="font-family:Arial,sans-serif">
<h2>Pending review orders</h2>
<table cellpadding="6" cellspacing="0" border="1" style="border-collapse:collapse">
<thead><tr><th>Order</th><th>Created</th><th>Email</th><th>Items (Own SKU &rarr; Supplier)</th><th>Actions</th></tr></thead>
<tbody>
{{- range . }}
<tr>
<td>{{ .Order.Name }}</td>
<td>{{ .Order.CreatedAt.Format "2006-01-02 15:04" }}</td>
<td>{{ .Order.Email }}</td>
<td>{{ range $i, $li := .Order.LineItems }}{{ if $i }}<br>{{ end }}{{ $li.Title }} &mdash; <b>{{ $li.SKU }}</b> ({{ vendorCode $li.SKU }}) &times; {{ $li.Quantity }}{{ else }}-{{ end }}</td>
<td style="white-space:nowrap;">
<form method="POST" action="/admin/approve" style="display:inline;">
<input type="hidden" name="id" value="{{ .Order.ID }}">
<input type="hidden" name="token" value="{{ .Token }}">
<input type="hidden" name="expires" value="{{ .Expires }}">
<button>Approve</button>
</form>
<form method="POST" action="/admin/reject" style="display:inline;margin-left:6px;">
<input type="hidden" name="id" value="{{ .Order.ID }}">
<input type="hidden" name="token" value="{{ .Token }}">
<input type="hidden" name="expires" value="{{ .Expires }}">
<button>Reject</button>
</form>
</td>
</tr>
{{- else }}
<tr><td colspan="5">No pending orders.</td></tr>
{{- end }}
</tbody>
</table>
</body></html>`))

var resultTemplate = template.Must(template.New("result").Parse(`<html><body style="font-family:Arial,sans-serif">
<h3>{{ .Heading }}</h3>
<p>{{ .Message }}</p>
{{- if .Detail }}
<pre>{{ .Detail }}</pre>
{{- end }}
</body></html>`))

type resultPage struct {
	Heading string
	Message string
	Detail  string
}

func renderPending(c *gin.Context, pending []types.PendingOrder) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = pendingTemplate.Execute(c.Writer, pending)
}

func renderResult(c *gin.Context, status int, page resultPage) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = resultTemplate.Execute(c.Writer, page)
}
