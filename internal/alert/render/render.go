// Package render builds the HTML bodies for instant and digest alert
// emails. Output is self-contained; renderers only consume the snapshot
// stored on the alert.
package render

import (
	"bytes"
	"html/template"

	"github.com/friendsofgo/errors"
)

// Field is one labelled visitor/campaign detail row.
type Field struct {
	Label string
	Value string
}

// Email is the input for a single-alert email.
type Email struct {
	Title        string
	Message      string
	Fields       []Field
	DashboardURL string
	SettingsURL  string
}

// DigestItem is one pending alert inside a digest email.
type DigestItem struct {
	Title   string
	Message string
	Fields  []Field
}

// Digest is the input for one combined daily digest email.
type Digest struct {
	Count        int
	Items        []DigestItem
	DashboardURL string
	SettingsURL  string
}

var alertTmpl = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2933;margin:0;padding:24px;background:#f5f7fa;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="margin-top:0;">{{.Title}}</h2>
    <p>{{.Message}}</p>
    {{if .Fields}}
    <table style="border-collapse:collapse;width:100%;margin:16px 0;">
      {{range .Fields}}
      <tr>
        <td style="padding:6px 12px 6px 0;color:#52606d;white-space:nowrap;">{{.Label}}</td>
        <td style="padding:6px 0;">{{.Value}}</td>
      </tr>
      {{end}}
    </table>
    {{end}}
    <p style="margin:24px 0;">
      <a href="{{.DashboardURL}}" style="background:#2563eb;color:#ffffff;padding:10px 18px;border-radius:6px;text-decoration:none;">View in dashboard</a>
    </p>
    <p style="font-size:12px;color:#9aa5b1;border-top:1px solid #e4e7eb;padding-top:16px;">
      You are receiving this because visitor alerts are enabled.
      <a href="{{.SettingsURL}}" style="color:#9aa5b1;">Manage alert settings</a>
    </p>
  </div>
</body>
</html>`))

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2933;margin:0;padding:24px;background:#f5f7fa;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="margin-top:0;">Your daily visitor alert digest</h2>
    <p>{{.Count}} new alert{{if ne .Count 1}}s{{end}} in the last 24 hours.</p>
    {{range .Items}}
    <div style="border:1px solid #e4e7eb;border-radius:6px;padding:16px;margin:12px 0;">
      <h3 style="margin:0 0 8px 0;font-size:15px;">{{.Title}}</h3>
      <p style="margin:0 0 8px 0;">{{.Message}}</p>
      {{if .Fields}}
      <table style="border-collapse:collapse;width:100%;">
        {{range .Fields}}
        <tr>
          <td style="padding:3px 12px 3px 0;color:#52606d;font-size:13px;white-space:nowrap;">{{.Label}}</td>
          <td style="padding:3px 0;font-size:13px;">{{.Value}}</td>
        </tr>
        {{end}}
      </table>
      {{end}}
    </div>
    {{end}}
    <p style="margin:24px 0;">
      <a href="{{.DashboardURL}}" style="background:#2563eb;color:#ffffff;padding:10px 18px;border-radius:6px;text-decoration:none;">View all in dashboard</a>
    </p>
    <p style="font-size:12px;color:#9aa5b1;border-top:1px solid #e4e7eb;padding-top:16px;">
      You are receiving this daily digest because your email mode is set to daily.
      <a href="{{.SettingsURL}}" style="color:#9aa5b1;">Manage alert settings</a>
    </p>
  </div>
</body>
</html>`))

// AlertEmail renders the HTML for one instant alert email.
func AlertEmail(in Email) (string, error) {
	var buf bytes.Buffer
	if err := alertTmpl.Execute(&buf, in); err != nil {
		return "", errors.Wrap(err, "render alert email")
	}
	return buf.String(), nil
}

// DigestEmail renders the HTML for one combined digest email.
func DigestEmail(in Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, in); err != nil {
		return "", errors.Wrap(err, "render digest email")
	}
	return buf.String(), nil
}
