package service

const WelcomeNoteTitle = "Welcome to Notes Studio"

const WelcomeNoteContent = `Welcome to Notes Studio!

Every note you write here is private to your account: the API only ever
returns notes owned by the identity in your access token.

Getting started:
  - Create a note from the directory view, or run "notes new" from the CLI.
  - Save edits with "notes edit <id>"; the server stamps updated_at on every save.
  - Deleting a note is permanent.

Inspect any request to the API and you will find an
"Authorization: Bearer <token>" header carrying your session.`
