// Package cli is the application root of the travelrisk terminal client.
//
// NewApp builds every collaborator exactly once and wires them together:
// configuration, local storage, the backend API client, the session, the
// notification store, the page services and the route gate. Run starts an
// interactive REPL in which navigational commands resolve to routes; each
// route passes through the gate before its page is rendered.
//
// Commands
//
//	help                          show available commands
//	login | register              the authentication page
//	logout                        forget the token
//	whoami                        show the signed-in identity
//	home | about | account        simple pages
//	destinations [sub]            list [query] | add | update <id> | delete <id>
//	notifications [sub]           list | add <msg> | read <id> | readall | rm <id> | refresh
//	open <path>                   navigate to an arbitrary route
//	exit | quit                   leave the program
package cli
