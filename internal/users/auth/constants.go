// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package auth

// # Authentication Constraints

const (
	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8

	// UsernameMinLength is the minimum accepted username length.
	UsernameMinLength = 3

	// TokenType is the scheme clients must use in the Authorization header.
	TokenType = "Bearer"
)

// # Outbound Mail

const (
	// MailSubjectVerification is the subject line for verification code emails.
	MailSubjectVerification = "Your Inkwell verification code"

	// MailSubjectPasswordReset is the subject line for password reset emails.
	MailSubjectPasswordReset = "Your Inkwell password reset code"

	// MailSubjectWelcome is the subject line sent after successful verification.
	MailSubjectWelcome = "Welcome to Inkwell"

	// mailBodyVerification is the plain-text template for verification emails.
	// Placeholders: code, expiry minutes.
	mailBodyVerification = "Welcome to Inkwell!\n\nYour verification code is: %s\n\nIt expires in %d minutes. If you did not create an account, ignore this email.\n"

	// mailBodyPasswordReset is the plain-text template for reset emails.
	// Placeholders: code, expiry minutes.
	mailBodyPasswordReset = "A password reset was requested for your Inkwell account.\n\nYour reset code is: %s\n\nIt expires in %d minutes. If you did not request this, ignore this email.\n"

	// mailBodyWelcome is the plain-text body sent once the email is verified.
	// Placeholder: display name or username.
	mailBodyWelcome = "Hi %s,\n\nYour email is verified and your Inkwell account is ready. Happy reading!\n"
)
