package email

import "html/template"

const layoutOpen = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`

var registrationTemplate = template.Must(template.New("registration_received").Parse(layoutOpen + `
  <h1 style="color: #FF6B00; text-align: center;">¡Registro Recibido!</h1>
  <p>Hola <strong>{{.CaptainName}}</strong>,</p>
  <p>Hemos recibido tu solicitud de registro para el equipo <strong>{{.TeamName}}</strong>.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h2 style="color: #333; margin-top: 0;">Detalles del Registro</h2>
    <p><strong>Equipo:</strong> {{.TeamName}}</p>
    <p><strong>Liga:</strong> {{.LeagueName}}</p>
    <p><strong>Número de Jugadores:</strong> {{.PlayerCount}}</p>
    <p><strong>Total a Pagar:</strong> {{.Amount}}€</p>
  </div>
  <h3 style="color: #FF6B00;">Próximos Pasos:</h3>
  <ol>
    <li>Realiza el pago del registro</li>
    <li>Espera la aprobación del administrador</li>
    <li>Recibirás un email de confirmación cuando tu equipo sea oficial</li>
  </ol>
  <p style="margin-top: 30px;">¡Gracias por unirte a 3lab3!</p>
  <p style="color: #666;">El equipo de 3lab3</p>
</div>`))

var approvalTemplate = template.Must(template.New("approval_confirmed").Parse(layoutOpen + `
  <h1 style="color: #FF6B00; text-align: center;">¡Felicidades! Tu Equipo ha sido Aprobado</h1>
  <p>Hola <strong>{{.CaptainName}}</strong>,</p>
  <p>Tu equipo <strong>{{.TeamName}}</strong> ha sido oficialmente aprobado para participar en la liga <strong>{{.LeagueName}}</strong>.</p>
  <div style="background-color: #f0f9ff; padding: 20px; border-left: 4px solid #FF6B00; margin: 20px 0;">
    <p style="margin: 0;"><strong>Ya eres un equipo oficial de 3lab3</strong></p>
    <p style="margin: 10px 0 0 0; color: #666;">Puedes empezar a consultar tus partidos y estadísticas en el panel.</p>
  </div>
  <ul>
    <li>Ver el calendario de partidos</li>
    <li>Consultar las estadísticas de tu equipo</li>
    <li>Seguir la clasificación de la liga</li>
  </ul>
  <p style="margin-top: 30px;">¡Mucha suerte en la temporada!</p>
  <p style="color: #666;">El equipo de 3lab3</p>
</div>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(layoutOpen + `
  <h1 style="color: #FF6B00; text-align: center;">¡Bienvenido a 3lab3!</h1>
  <p>Hola <strong>{{.FullName}}</strong>,</p>
  <p>Gracias por registrarte en nuestra plataforma de gestión de ligas de baloncesto.</p>
  <p>Ya puedes empezar a:</p>
  <ul>
    <li>Registrar tu equipo en una liga</li>
    <li>Gestionar la plantilla desde el panel</li>
    <li>Consultar partidos y clasificaciones</li>
  </ul>
  <p>Si tienes alguna pregunta, no dudes en contactarnos.</p>
  <p style="color: #666;">El equipo de 3lab3</p>
</div>`))
