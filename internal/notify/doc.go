// Package notify delivers checkup reports to an external recipient. The only
// shipped transport is SMTP, mirroring how the reports were historically
// mailed out, but callers depend on the Notifier interface so tests and
// future transports can substitute their own delivery.
package notify
