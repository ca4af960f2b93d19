package email

const (
	subjectQuoteNotificationFmt   = "Nueva solicitud de cotización: %s"
	subjectCommentNotificationFmt = "Nuevo comentario de %s"
)
