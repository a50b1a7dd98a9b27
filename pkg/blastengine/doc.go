// Package blastengine is a minimal HTTP client for the Blastengine
// email-delivery REST API.
//
// It covers the two delivery flows the API exposes: a single transactional
// send, and the three-step bulk sequence (begin, update recipients, commit).
// The client owns bearer-token derivation, bounded retry with exponential
// backoff, JSON-vs-multipart body selection, and normalization of the API's
// heterogeneous error shapes into typed errors.
//
// # Usage
//
//	client, err := blastengine.New(blastengine.Config{
//		LoginID: os.Getenv("BLASTENGINE_LOGIN_ID"),
//		APIKey:  os.Getenv("BLASTENGINE_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	id, err := client.SendTransactional(ctx, blastengine.Payload{
//		Subject:  "Hello",
//		From:     blastengine.Address{Email: "noreply@example.com"},
//		To:       "user@example.com",
//		TextPart: "Hello!",
//	}, nil)
//
// # Authentication
//
// Blastengine does not use OAuth. Each request carries a bearer token
// derived once from the credential pair: the lowercase hex SHA-256 digest
// of loginID+apiKey, base64-encoded. The token is computed in New and is
// immutable for the life of the client.
//
// # Bulk deliveries
//
// A bulk delivery must be created, updated with recipients, and committed,
// in that strict order. The delivery handle returned by CreateBulk threads
// through the subsequent calls; the client keeps no state between them.
//
//	id, err := client.CreateBulk(ctx, payload, nil)
//	err = client.UpdateBulk(ctx, id, recipients)
//	id, err = client.CommitBulk(ctx, id, nil) // nil = send immediately
//
// # Retries
//
// Transport failures and a fixed whitelist of status codes (408, 425, 429,
// 500, 502, 503, 504) are retried up to MaxRetries additional attempts with
// exponentially doubling delay (1s, 2s, 4s, ...). Any other status >= 400
// fails on the first attempt. Failures surface as *APIError wrapping one of
// the package sentinels, with all remote-derived text passed through
// pkg/redact.
package blastengine
