package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

const (
	reportSubjectTemplateConstant = "checkup report: %d dirty, %d unpushed"

	smtpNetworkConstant           = "tcp"
	startTLSExtensionNameConstant = "STARTTLS"

	messageHeaderFromConstant        = "From"
	messageHeaderToConstant          = "To"
	messageHeaderSubjectConstant     = "Subject"
	messageHeaderMIMEVersionConstant = "MIME-Version"
	messageHeaderContentTypeConstant = "Content-Type"
	mimeVersionValueConstant         = "1.0"
	contentTypeValueConstant         = `text/plain; charset="utf-8"`
	messageHeaderTemplateConstant    = "%s: %s\r\n"
	messageHeaderBodySeparator       = "\r\n"

	smtpDialFailureTemplateConstant     = "unable to reach smtp server %s: %w"
	smtpDeliveryFailureTemplateConstant = "unable to deliver report through %s: %w"
)

// Notifier delivers a rendered report to its recipient.
type Notifier interface {
	Send(executionContext context.Context, subject string, body string) error
}

// BuildReportSubject renders the notification subject summarizing the scan.
func BuildReportSubject(dirtyCount int, unpushedCount int) string {
	return fmt.Sprintf(reportSubjectTemplateConstant, dirtyCount, unpushedCount)
}

// SMTPConfiguration carries the connection and addressing settings for
// outbound mail. Password is supplied separately from the configuration file
// through the environment.
type SMTPConfiguration struct {
	Host             string `mapstructure:"smtp_host" yaml:"smtp_host"`
	Port             int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	SenderAddress    string `mapstructure:"sender" yaml:"sender"`
	RecipientAddress string `mapstructure:"recipient" yaml:"recipient"`
}

// SMTPNotifier sends reports through an SMTP server, upgrading the connection
// with STARTTLS when the server offers it.
type SMTPNotifier struct {
	configuration SMTPConfiguration
	password      string
}

// NewSMTPNotifier constructs a notifier for the configured server.
func NewSMTPNotifier(configuration SMTPConfiguration, password string) *SMTPNotifier {
	return &SMTPNotifier{configuration: configuration, password: password}
}

// Send connects to the configured server and delivers one message. The dial
// honors context cancellation; an already-established delivery runs to
// completion.
func (notifier *SMTPNotifier) Send(executionContext context.Context, subject string, body string) error {
	serverAddress := net.JoinHostPort(notifier.configuration.Host, strconv.Itoa(notifier.configuration.Port))

	var dialer net.Dialer
	connection, dialError := dialer.DialContext(executionContext, smtpNetworkConstant, serverAddress)
	if dialError != nil {
		return fmt.Errorf(smtpDialFailureTemplateConstant, serverAddress, dialError)
	}

	deliveryError := notifier.deliver(connection, subject, body)
	if deliveryError != nil {
		return fmt.Errorf(smtpDeliveryFailureTemplateConstant, serverAddress, deliveryError)
	}
	return nil
}

func (notifier *SMTPNotifier) deliver(connection net.Conn, subject string, body string) error {
	smtpClient, clientError := smtp.NewClient(connection, notifier.configuration.Host)
	if clientError != nil {
		_ = connection.Close()
		return clientError
	}
	defer func() { _ = smtpClient.Close() }()

	if startTLSSupported, _ := smtpClient.Extension(startTLSExtensionNameConstant); startTLSSupported {
		if startTLSError := smtpClient.StartTLS(&tls.Config{ServerName: notifier.configuration.Host}); startTLSError != nil {
			return startTLSError
		}
	}

	if len(notifier.password) > 0 {
		authentication := smtp.PlainAuth("", notifier.configuration.SenderAddress, notifier.password, notifier.configuration.Host)
		if authenticationError := smtpClient.Auth(authentication); authenticationError != nil {
			return authenticationError
		}
	}

	if senderError := smtpClient.Mail(notifier.configuration.SenderAddress); senderError != nil {
		return senderError
	}
	if recipientError := smtpClient.Rcpt(notifier.configuration.RecipientAddress); recipientError != nil {
		return recipientError
	}

	messageWriter, dataError := smtpClient.Data()
	if dataError != nil {
		return dataError
	}
	message := BuildMessage(notifier.configuration.SenderAddress, notifier.configuration.RecipientAddress, subject, body)
	if _, writeError := messageWriter.Write([]byte(message)); writeError != nil {
		return writeError
	}
	if closeError := messageWriter.Close(); closeError != nil {
		return closeError
	}

	return smtpClient.Quit()
}

// BuildMessage assembles the RFC 5322 message delivered over SMTP.
func BuildMessage(senderAddress string, recipientAddress string, subject string, body string) string {
	messageBuilder := &strings.Builder{}
	messageBuilder.WriteString(fmt.Sprintf(messageHeaderTemplateConstant, messageHeaderFromConstant, senderAddress))
	messageBuilder.WriteString(fmt.Sprintf(messageHeaderTemplateConstant, messageHeaderToConstant, recipientAddress))
	messageBuilder.WriteString(fmt.Sprintf(messageHeaderTemplateConstant, messageHeaderSubjectConstant, subject))
	messageBuilder.WriteString(fmt.Sprintf(messageHeaderTemplateConstant, messageHeaderMIMEVersionConstant, mimeVersionValueConstant))
	messageBuilder.WriteString(fmt.Sprintf(messageHeaderTemplateConstant, messageHeaderContentTypeConstant, contentTypeValueConstant))
	messageBuilder.WriteString(messageHeaderBodySeparator)
	messageBuilder.WriteString(body)
	return messageBuilder.String()
}
