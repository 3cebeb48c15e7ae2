package email

// Services agrupa los services del dominio email.
type Services struct {
	Send SendService
}

// NewServices crea el agregador de services email.
func NewServices(d Deps) Services {
	return Services{
		Send: NewSendService(d),
	}
}
