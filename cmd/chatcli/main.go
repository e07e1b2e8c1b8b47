package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"supercharged-notes-be/pkg/chatstream"

	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	answerColor = color.New(color.FgWhite)
	blockColor  = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.Faint)
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "backend base URL")
	userID := flag.String("user", "demo-user", "user id sent in the auth header")
	token := flag.String("token", "", "bearer token (jwt auth mode)")
	mode := flag.String("mode", "quick", "response mode: quick or detailed")
	docID := flag.String("doc", "", "restrict answers to one document id")
	docKind := flag.String("kind", "note", "document kind: note, quiz or flashcard_set")
	docName := flag.String("name", "", "document display name")
	noStream := flag.Bool("no-stream", false, "request the whole answer at once")
	flag.Parse()

	client := chatstream.NewClient(*baseURL)
	if *token != "" {
		client.Token = *token
	} else {
		client.UserID = *userID
	}

	var doc *chatstream.DocumentRef
	if *docID != "" {
		doc = &chatstream.DocumentRef{ID: *docID, Kind: *docKind, DisplayName: *docName}
		dimColor.Printf("Scoped to %s %q\n", *docKind, *docName)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var history []chatstream.HistoryMessage
	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		req := chatstream.Request{
			Message:         query,
			ResponseMode:    *mode,
			ContextDocument: doc,
			History:         history,
		}

		answer, ok := ask(ctx, client, req, *noStream)
		if ctx.Err() != nil {
			return
		}
		history = append(history, chatstream.HistoryMessage{Role: "user", Content: query})
		if ok {
			history = append(history, chatstream.HistoryMessage{Role: "assistant", Content: answer})
		}
	}
}

func ask(ctx context.Context, client *chatstream.Client, req chatstream.Request, noStream bool) (string, bool) {
	if noStream {
		answer, err := client.Complete(ctx, req)
		if err != nil {
			errorColor.Println(chatstream.ErrorText)
			dimColor.Println(err.Error())
			return "", false
		}
		remaining, blocks := chatstream.Extract(answer)
		answerColor.Println(remaining)
		printBlocks(blocks)
		return answer, true
	}

	// Raw text only ever grows, so printing the new suffix keeps the terminal live.
	printed := 0
	msg, err := client.Stream(ctx, req, func(m chatstream.Message) {
		if len(m.RawText) > printed {
			answerColor.Print(m.RawText[printed:])
			printed = len(m.RawText)
		}
	})
	fmt.Println()
	if err != nil {
		errorColor.Println(err.Error())
		return "", false
	}
	if msg.Failed {
		errorColor.Println(msg.DisplayText)
		if msg.Err != nil {
			dimColor.Println(msg.Err.Error())
		}
		return "", false
	}
	printBlocks(msg.Blocks)
	return msg.RawText, true
}

func printBlocks(blocks []chatstream.Block) {
	for i, b := range blocks {
		blockColor.Printf("[%s block %d]\n", b.Kind, i+1)
		blockColor.Println(b.Body)
	}
}
