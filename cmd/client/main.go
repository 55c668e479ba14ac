// Package main runs the interactive bloglist client.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/junowong/bloglist/internal/client/api"
	"github.com/junowong/bloglist/internal/client/app"
	"github.com/junowong/bloglist/internal/client/state"
	"github.com/junowong/bloglist/internal/models"

	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

// stdinConfirmer asks a yes/no question on the terminal.
type stdinConfirmer struct {
	scanner *bufio.Scanner
}

func (c *stdinConfirmer) Confirm(message string) bool {
	fmt.Printf("%s [y/N]: ", message)
	if !c.scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.scanner.Text()))
	return answer == "y" || answer == "yes"
}

// promptCredentials reads a username and password.
func promptCredentials(scanner *bufio.Scanner) (string, string) {
	fmt.Print("Username: ")
	scanner.Scan()
	username := strings.TrimSpace(scanner.Text())

	fmt.Print("Password: ")
	scanner.Scan()
	password := scanner.Text()

	return username, password
}

// promptDraft reads the fields of a new post.
func promptDraft(scanner *bufio.Scanner) models.Draft {
	fmt.Print("Title: ")
	scanner.Scan()
	title := strings.TrimSpace(scanner.Text())

	fmt.Print("Author: ")
	scanner.Scan()
	author := strings.TrimSpace(scanner.Text())

	fmt.Print("URL: ")
	scanner.Scan()
	url := strings.TrimSpace(scanner.Text())

	return models.Draft{Title: title, Author: author, URL: url}
}

// printNotice shows and consumes the current notification, if any.
func printNotice(a *app.App) {
	if n := a.Notices.Current(); n != nil {
		fmt.Printf("[%s] %s\n", n.Severity, n.Content)
	}
}

// printPosts lists the posts sorted by likes descending, marking the ones
// the current user may delete.
func printPosts(a *app.App) {
	posts := a.Visible()
	if len(posts) == 0 {
		fmt.Println("No blogs yet")
		return
	}
	for _, p := range posts {
		marker := " "
		if a.CanDelete(p) {
			marker = "*"
		}
		fmt.Printf("%s %s  %s by %s (%s), %d likes\n", marker, p.ID, p.Title, p.Author, p.URL, p.Likes)
	}
}

// repl runs the interactive shell loop, accepting commands to manage blogs.
// scanner must be the same one the confirmation prompt reads from, so the
// two never fight over buffered stdin.
func repl(a *app.App, scanner *bufio.Scanner) {
	ctx := context.Background()

	a.Restore()
	a.LoadPosts(ctx)
	printNotice(a)

	for {
		fmt.Print("bloglist> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, logout, list, create, like <id>, delete <id>, whoami, exit")
		case "login":
			username, password := promptCredentials(scanner)
			a.Login(ctx, username, password)
			printNotice(a)
			if sess := a.Session.Current(); sess != nil {
				fmt.Printf("%s logged in\n", sess.Username)
			}
		case "logout":
			a.Logout()
			fmt.Println("Logged out")
		case "list":
			a.LoadPosts(ctx)
			printNotice(a)
			printPosts(a)
		case "create":
			if a.Session.Current() == nil {
				fmt.Println("Log in first")
				continue
			}
			draft := promptDraft(scanner)
			a.CreatePost(ctx, draft)
			printNotice(a)
		case "like":
			if len(args) < 2 {
				fmt.Println("Usage: like <id>")
				continue
			}
			a.LikePost(ctx, args[1])
			printNotice(a)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.DeletePost(ctx, args[1])
			printNotice(a)
		case "whoami":
			if sess := a.Session.Current(); sess != nil {
				fmt.Println(sess.Username)
			} else {
				fmt.Println("not logged in")
			}
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL   string
		stateFile string
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&stateFile, "state", "bloglist.json", "path to the local state file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Bloglist Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	client := api.New(baseURL, nil)
	store := state.NewFileStore(stateFile)
	scanner := bufio.NewScanner(os.Stdin)
	confirm := &stdinConfirmer{scanner: scanner}

	a := app.New(client, confirm, store, 0, zap.NewNop())
	repl(a, scanner)
}
