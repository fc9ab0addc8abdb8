package email

// layoutTemplate wraps every email body; the body is the "content" template
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.AppName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #0f766e; padding: 32px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 36px 30px; color: #4a5568; font-size: 16px; line-height: 1.6;">
                            {{template "content" .}}
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 12px; margin: 0;">&copy; {{.Year}} {{.AppName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

const passwordResetTemplate = `
<h2 style="color: #1a1a2e; margin: 0 0 20px 0;">Reset Your Password</h2>
<p>We received a request to reset the password for <strong>{{.Email}}</strong>.</p>
<p>This link expires in <strong>1 hour</strong>.</p>
<p style="margin: 30px 0;">
    <a href="{{.ResetURL}}" style="background-color: #0f766e; color: #ffffff; padding: 14px 28px; border-radius: 8px; text-decoration: none;">Reset Password</a>
</p>
<p style="color: #718096; font-size: 14px;">If you didn't request this, you can ignore this email.</p>
<p style="color: #718096; font-size: 14px; word-break: break-all;"><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
`

const complianceAlertTemplate = `
<h2 style="color: #1a1a2e; margin: 0 0 20px 0;">Compliance documents need attention</h2>
<p>The following documents for <strong>{{.BusinessName}}</strong> are expiring soon or have expired:</p>
<table role="presentation" style="width: 100%; border-collapse: collapse; margin: 20px 0;">
    <tr>
        <th style="text-align: left; border-bottom: 1px solid #e2e8f0; padding: 8px;">Document</th>
        <th style="text-align: left; border-bottom: 1px solid #e2e8f0; padding: 8px;">Status</th>
        <th style="text-align: left; border-bottom: 1px solid #e2e8f0; padding: 8px;">Expiry</th>
    </tr>
    {{range .Items}}
    <tr>
        <td style="padding: 8px;">{{.Name}}</td>
        <td style="padding: 8px;">{{.Status}}</td>
        <td style="padding: 8px;">{{date .ExpiryDate}}</td>
    </tr>
    {{end}}
</table>
<p><a href="{{.ComplianceURL}}" style="color: #0f766e;">Upload renewed documents</a></p>
`
