package email

// Email templates using HTML

const campaignTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #0f3d6e, #1a5ca8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .message-box { background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0; white-space: pre-line; }
    </style>
</head>
<body>
    <div class="header">
        <h1>BNA Assurances</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Votre partenaire de confiance</p>
    </div>
    <div class="content">
        <h2>{{.Title}}</h2>
        <div class="message-box">{{.Message}}</div>
    </div>
    <div class="footer">
        <p>&copy; 2026 BNA Assurances. Tous droits r&eacute;serv&eacute;s.</p>
        <p>Ceci est un message automatique. Merci de ne pas y r&eacute;pondre.</p>
    </div>
</body>
</html>
`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #0f3d6e, #1a5ca8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .button { display: inline-block; background: #1a5ca8; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; margin: 20px 0; }
        .warning { background: #fef3c7; border: 1px solid #f59e0b; padding: 15px; border-radius: 8px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="header">
        <h1>BNA Assurances</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Votre partenaire de confiance</p>
    </div>
    <div class="content">
        <h2>R&eacute;initialisation de votre mot de passe</h2>
        <p>Bonjour {{.FirstName}},</p>
        <p>Vous avez demand&eacute; la r&eacute;initialisation de votre mot de passe. Cliquez sur le bouton ci-dessous pour en choisir un nouveau.</p>

        <p style="text-align: center;">
            <a href="{{.ResetURL}}" class="button">R&eacute;initialiser mon mot de passe</a>
        </p>

        <div class="warning">
            <strong>Ce lien expire dans 10 minutes.</strong> Si vous n'&ecirc;tes pas &agrave; l'origine de cette demande, ignorez ce message.
        </div>
    </div>
    <div class="footer">
        <p>&copy; 2026 BNA Assurances. Tous droits r&eacute;serv&eacute;s.</p>
        <p>Ceci est un message automatique. Merci de ne pas y r&eacute;pondre.</p>
    </div>
</body>
</html>
`
