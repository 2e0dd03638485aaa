package email

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderers consume payloads the dispatcher has already escaped. They add
// no escaping of their own: text/template rather than html/template, so the
// pre-escaped fields are interpolated verbatim. Recipient addresses never
// pass through here; only body content does.

// ContactEmailData holds the sanitized fields of a contact form submission.
type ContactEmailData struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Service  string
	Message  string
	LandSize string
}

// StatusEmailData holds the sanitized fields of a status-change notice.
type StatusEmailData struct {
	Name      string
	Service   string
	OldStatus string
	NewStatus string
}

// WelcomeEmailData holds the sanitized fields of a welcome email.
type WelcomeEmailData struct {
	Name string
}

// statusInfo maps a workflow status to its presentation.
type statusInfo struct {
	Label string
	Color string
	Icon  string
}

var statusTable = map[string]statusInfo{
	"pending":   {Label: "Menunggu", Color: "#f59e0b", Icon: "⏳"},
	"negosiasi": {Label: "Negosiasi", Color: "#3b82f6", Icon: "💬"},
	"success":   {Label: "Berhasil", Color: "#10b981", Icon: "✅"},
}

// StatusPresentation resolves the label, color and icon for a status value.
// Unknown statuses get a generic presentation; rendering never fails on an
// unrecognized status string.
func StatusPresentation(status string) (label, color, icon string) {
	if info, ok := statusTable[status]; ok {
		return info.Label, info.Color, info.Icon
	}
	return status, "#666", "📋"
}

const docHeader = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f4f4;">
  <table role="presentation" style="width: 100%; border-collapse: collapse;">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table role="presentation" style="width: 600px; border-collapse: collapse; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
`

const docFooter = `          <tr>
            <td style="background-color: #f8f9fa; padding: 30px; border-radius: 0 0 8px 8px; border-top: 1px solid #eee; text-align: center;">
              <p style="color: #666; margin: 0 0 10px 0; font-size: 14px;">
                📧 info@berkahjaya.com | 📞 (021) 1234-5678
              </p>
              <p style="color: #999; margin: 0; font-size: 12px;">
                © 2024 PT Berkah Jaya Kontraktor. All rights reserved.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`

var contactConfirmationTmpl = template.Must(template.New("contact_confirmation").Parse(docHeader + `          <tr>
            <td style="background: linear-gradient(135deg, #1a5f2a 0%, #2d8a3e 100%); padding: 30px; border-radius: 8px 8px 0 0;">
              <h1 style="color: #ffffff; margin: 0; font-size: 24px; text-align: center;">AlmondSense</h1>
              <p style="color: #c8e6c9; margin: 10px 0 0 0; text-align: center; font-size: 14px;">Pertanian Digital Cerdas</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px 30px;">
              <h2 style="color: #1a5f2a; margin: 0 0 20px 0; font-size: 20px;">Halo, {{.Data.Name}}! 👋</h2>
              <p style="color: #333; line-height: 1.6; margin: 0 0 20px 0;">
                Terima kasih telah menghubungi kami. Kami telah menerima pengajuan Anda dan tim kami akan segera menindaklanjuti.
              </p>
              <div style="background-color: #f8f9fa; border-left: 4px solid #1a5f2a; padding: 20px; margin: 20px 0; border-radius: 0 4px 4px 0;">
                <h3 style="color: #1a5f2a; margin: 0 0 15px 0; font-size: 16px;">📋 Detail Pengajuan:</h3>
                <table style="width: 100%; border-collapse: collapse;">
                  <tr>
                    <td style="padding: 8px 0; color: #666; width: 140px;">Layanan:</td>
                    <td style="padding: 8px 0; color: #333; font-weight: 500;">{{.Data.Service}}</td>
                  </tr>
                  <tr>
                    <td style="padding: 8px 0; color: #666;">No. Telepon:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Phone}}</td>
                  </tr>
{{- if .Data.Company}}
                  <tr>
                    <td style="padding: 8px 0; color: #666;">Perusahaan:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Company}}</td>
                  </tr>
{{- end}}
{{- if .Data.LandSize}}
                  <tr>
                    <td style="padding: 8px 0; color: #666;">Luas Lahan:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.LandSize}}</td>
                  </tr>
{{- end}}
{{- if .Data.Message}}
                  <tr>
                    <td style="padding: 8px 0; color: #666; vertical-align: top;">Pesan:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Message}}</td>
                  </tr>
{{- end}}
                </table>
              </div>
              <div style="background-color: #e8f5e9; padding: 20px; border-radius: 4px; margin: 20px 0;">
                <p style="color: #2e7d32; margin: 0; font-size: 14px;">
                  <strong>⏱️ Estimasi Waktu:</strong> Tim kami akan menghubungi Anda dalam 1x24 jam kerja.
                </p>
              </div>
              <p style="color: #333; line-height: 1.6; margin: 20px 0 0 0;">
                Jika Anda memiliki pertanyaan, jangan ragu untuk menghubungi kami.
              </p>
            </td>
          </tr>
` + docFooter))

var adminAlertTmpl = template.Must(template.New("admin_alert").Parse(docHeader + `          <tr>
            <td style="background: linear-gradient(135deg, #d97706 0%, #f59e0b 100%); padding: 30px; border-radius: 8px 8px 0 0;">
              <h1 style="color: #ffffff; margin: 0; font-size: 24px; text-align: center;">🔔 Pengajuan Baru Masuk!</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px 30px;">
              <div style="background-color: #fef3c7; border-left: 4px solid #d97706; padding: 20px; margin-bottom: 20px; border-radius: 0 4px 4px 0;">
                <h3 style="color: #92400e; margin: 0 0 15px 0; font-size: 16px;">📋 Detail Pengajuan:</h3>
                <table style="width: 100%; border-collapse: collapse;">
                  <tr>
                    <td style="padding: 8px 0; color: #666; width: 140px; font-weight: bold;">Nama:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Name}}</td>
                  </tr>
                  <tr>
                    <td style="padding: 8px 0; color: #666; font-weight: bold;">Email:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Email}}</td>
                  </tr>
                  <tr>
                    <td style="padding: 8px 0; color: #666; font-weight: bold;">Telepon:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Phone}}</td>
                  </tr>
                  <tr>
                    <td style="padding: 8px 0; color: #666; font-weight: bold;">Layanan:</td>
                    <td style="padding: 8px 0; color: #333; font-weight: 500;">{{.Data.Service}}</td>
                  </tr>
{{- if .Data.Company}}
                  <tr>
                    <td style="padding: 8px 0; color: #666; font-weight: bold;">Perusahaan:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Company}}</td>
                  </tr>
{{- end}}
{{- if .Data.LandSize}}
                  <tr>
                    <td style="padding: 8px 0; color: #666; font-weight: bold;">Luas Lahan:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.LandSize}}</td>
                  </tr>
{{- end}}
{{- if .Data.Message}}
                  <tr>
                    <td style="padding: 8px 0; color: #666; font-weight: bold; vertical-align: top;">Pesan:</td>
                    <td style="padding: 8px 0; color: #333;">{{.Data.Message}}</td>
                  </tr>
{{- end}}
                </table>
              </div>
              <p style="color: #666; font-size: 14px; margin: 20px 0 0 0;">
                Silakan tindak lanjuti pengajuan ini secepatnya.
              </p>
            </td>
          </tr>
` + docFooter))

var statusUpdateTmpl = template.Must(template.New("status_update").Parse(docHeader + `          <tr>
            <td style="background: linear-gradient(135deg, #1a5f2a 0%, #2d8a3e 100%); padding: 30px; border-radius: 8px 8px 0 0;">
              <h1 style="color: #ffffff; margin: 0; font-size: 24px; text-align: center;">PT Berkah Jaya Kontraktor</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px 30px;">
              <h2 style="color: #333; margin: 0 0 20px 0; font-size: 20px;">Halo, {{.Data.Name}}!</h2>
              <p style="color: #333; line-height: 1.6; margin: 0 0 20px 0;">
                Status pengajuan layanan <strong>{{.Data.Service}}</strong> Anda telah diperbarui.
              </p>
              <div style="text-align: center; padding: 30px 0;">
                <div style="display: inline-block; background-color: {{.StatusColor}}20; padding: 20px 40px; border-radius: 8px; border: 2px solid {{.StatusColor}};">
                  <span style="font-size: 32px;">{{.StatusIcon}}</span>
                  <p style="color: {{.StatusColor}}; font-size: 18px; font-weight: 600; margin: 10px 0 0 0;">
                    Status: {{.StatusLabel}}
                  </p>
                </div>
              </div>
{{- if .IsSuccess}}
              <div style="background-color: #e8f5e9; padding: 20px; border-radius: 4px; margin: 20px 0; text-align: center;">
                <p style="color: #2e7d32; margin: 0; font-size: 16px;">
                  🎉 Selamat! Pengajuan Anda telah berhasil diproses.
                </p>
              </div>
{{- end}}
{{- if .IsNegotiating}}
              <div style="background-color: #e3f2fd; padding: 20px; border-radius: 4px; margin: 20px 0;">
                <p style="color: #1565c0; margin: 0; font-size: 14px;">
                  💼 Tim kami akan segera menghubungi Anda untuk proses negosiasi lebih lanjut.
                </p>
              </div>
{{- end}}
            </td>
          </tr>
` + docFooter))

var welcomeTmpl = template.Must(template.New("welcome").Parse(docHeader + `          <tr>
            <td style="background: linear-gradient(135deg, #1a5f2a 0%, #2d8a3e 100%); padding: 40px 30px; border-radius: 8px 8px 0 0; text-align: center;">
              <h1 style="color: #ffffff; margin: 0; font-size: 28px;">🎉 Selamat Datang!</h1>
              <p style="color: #c8e6c9; margin: 15px 0 0 0; font-size: 16px;">PT Berkah Jaya Kontraktor</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px 30px;">
              <h2 style="color: #333; margin: 0 0 20px 0; font-size: 22px;">Halo, {{.Data.Name}}! 👋</h2>
              <p style="color: #333; line-height: 1.8; margin: 0 0 20px 0; font-size: 16px;">
                Terima kasih telah bergabung dengan PT Berkah Jaya Kontraktor. Kami sangat senang Anda mempercayakan kebutuhan konstruksi Anda kepada kami.
              </p>
              <div style="background-color: #f8f9fa; padding: 25px; border-radius: 8px; margin: 25px 0;">
                <h3 style="color: #1a5f2a; margin: 0 0 15px 0; font-size: 16px;">🏗️ Layanan Kami:</h3>
                <ul style="color: #555; line-height: 2; margin: 0; padding-left: 20px;">
                  <li>Pematangan Lahan &amp; Land Clearing</li>
                  <li>Galian Tanah &amp; Urugan</li>
                  <li>Pembangunan Jalan &amp; Drainase</li>
                  <li>Konstruksi Bangunan Komersial</li>
                </ul>
              </div>
              <div style="text-align: center; margin: 30px 0;">
                <a href="#" style="display: inline-block; background-color: #1a5f2a; color: #ffffff; text-decoration: none; padding: 15px 40px; border-radius: 6px; font-weight: 600; font-size: 16px;">
                  Mulai Konsultasi
                </a>
              </div>
            </td>
          </tr>
` + docFooter))

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// RenderContactConfirmation builds the customer-facing confirmation body.
func RenderContactConfirmation(data ContactEmailData) (string, error) {
	return execute(contactConfirmationTmpl, struct {
		Title string
		Data  ContactEmailData
	}{"Konfirmasi Pengajuan", data})
}

// RenderAdminAlert builds the staff-facing new-submission alert body.
func RenderAdminAlert(data ContactEmailData) (string, error) {
	return execute(adminAlertTmpl, struct {
		Title string
		Data  ContactEmailData
	}{"Pengajuan Baru", data})
}

// RenderStatusUpdate builds the status-change notice body. Unknown status
// values render with a generic presentation.
func RenderStatusUpdate(data StatusEmailData) (string, error) {
	label, color, icon := StatusPresentation(data.NewStatus)
	return execute(statusUpdateTmpl, struct {
		Title         string
		Data          StatusEmailData
		StatusLabel   string
		StatusColor   string
		StatusIcon    string
		IsSuccess     bool
		IsNegotiating bool
	}{
		Title:         "Update Status",
		Data:          data,
		StatusLabel:   label,
		StatusColor:   color,
		StatusIcon:    icon,
		IsSuccess:     data.NewStatus == "success",
		IsNegotiating: data.NewStatus == "negosiasi",
	})
}

// RenderWelcome builds the new-user welcome body.
func RenderWelcome(data WelcomeEmailData) (string, error) {
	return execute(welcomeTmpl, struct {
		Title string
		Data  WelcomeEmailData
	}{"Selamat Datang", data})
}
