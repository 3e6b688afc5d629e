package mailer

// sendRequest тело запроса к почтовому шлюзу
type sendRequest struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
