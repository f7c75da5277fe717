package dialogue

// Bot utterances, taken from the Contactia web widget.
const (
	msgAskPartySize = "Perfecto 😊 ¿Para cuántas personas deseas hacer la reserva?"
	msgAskDate      = "¿Qué día deseas la reserva? (formato DD/MM/AAAA)"
	msgAskTime      = "¿A qué hora? (por ejemplo 14:00)"
	msgAskName      = "¡Sí! Tenemos mesas disponibles 🎉 ¿Podrías indicarme tu nombre completo?"
	msgAskEmail     = "Gracias, ¿me das ahora un correo electrónico para la confirmación?"
	msgAskPhone     = "Perfecto, ¿podrías darme tu número de teléfono móvil?"

	msgHintPartySize = "Necesito un número de personas entre 1 y 20, por ejemplo: 4."
	msgHintDate      = "Escribe la fecha en formato DD/MM/AAAA, por ejemplo: 25/12/2025."
	msgHintTime      = "Escribe la hora en formato HH:MM, por ejemplo: 14:00."
	msgHintEmail     = "Necesito un correo electrónico válido, por ejemplo: nombre@correo.com."
	msgHintPhone     = "Necesito un número de teléfono móvil, por ejemplo: 612345678."

	msgReprompt = "Por favor, responde con el dato solicitado para continuar la reserva."

	msgNoTables      = "Lo siento 😞 no hay mesas disponibles para esa hora. El proceso de reserva ha terminado, puedes empezar de nuevo cuando quieras."
	msgNoTablesRetry = "Lo siento 😞 no hay mesas disponibles para esa hora. ¿Quieres probar con otro horario o día?"
	msgNewTimeFree   = "¡Perfecto! Hay disponibilidad 🎉 ¿Podrías indicarme tu nombre completo?"
	msgNewTimeBusy   = "Tampoco hay disponibilidad a esa hora. ¿Quieres intentar con otra hora o día?"

	msgConfirmYesNo = "Por favor, responde *Sí* o *No* para confirmar o cancelar la reserva."
	msgDeclined     = "De acuerdo 👍. He cancelado el proceso de reserva. Puedes empezar de nuevo cuando quieras."

	msgAskCancelID         = "Claro, puedo ayudarte a cancelar tu reserva. ¿Podrías indicarme el identificador (ejemplo: SOL-20251107-4123)?"
	msgAskCancelEmail      = "Perfecto, ¿podrías indicarme el correo electrónico con el que hiciste la reserva?"
	msgRepromptCancelID    = "Por favor, dime el ID de tu reserva (ejemplo: SOL-20251107-4123)."
	msgRepromptCancelEmail = "Ahora necesito el correo electrónico con el que hiciste la reserva."

	msgGatewayFailure = "Lo siento, ha habido un problema al procesar tu solicitud. Por favor, inténtalo de nuevo en unos minutos."

	msgFallback = "No entiendo tu solicitud. ¿Quieres hacer una reserva o cancelar una existente?"
)
