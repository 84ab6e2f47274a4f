// Package attend implements the client-side session lifecycle for the
// SmartAttendance face-recognition backend: token persistence, unverified
// claim decoding, a resolving/authenticated/anonymous session state machine,
// and role-based route authorization.
//
// Session lifecycle:
//   - A single bearer token lives in a TokenStore. The Manager resolves it
//     asynchronously at startup; until that resolution completes the session
//     reports Loading and the Guard renders a placeholder instead of
//     redirecting. A token that fails structural decode or is already expired
//     is cleared and the session lands Anonymous.
//   - Login decodes the backend-issued token, persists it, and moves the
//     session to Authenticated. Logout (and the 401 path used by the API
//     client) clears the token and is safe to repeat.
//
// Route authorization:
//   - Routes declare at most one required Role out of the closed set
//     {admin, hod, student}. The Guard is a pure function over the current
//     session snapshot: a role mismatch redirects to the user's own landing
//     route, never to the requested one, and landings are guaranteed
//     reachable under their own role so redirects cannot loop.
//
// The api client, scanner loops, and CSV export live in the client, scanner,
// and export subpackages; cmd/attendctl composes everything for terminal use.
package attend
