// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth

import "context"

// CodeNotifier delivers a confirmation code to a user. The service does not
// care how delivery happens; the production implementation queues an email
// through Redis, and tests substitute an in-memory recorder.
type CodeNotifier interface {
	// Notify hands off a confirmation code for delivery to the given address.
	Notify(context context.Context, email, username, code string) error
}
