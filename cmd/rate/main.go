// Command rate rates a food from one of your orders from the terminal.
//
//	rate -api http://localhost:8080 -email me@example.com -password secret -order 3 -food 7 -rating 5 -comment "Great"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"food-store-api/client"
	"food-store-api/ratingform"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		api      = fs.String("api", "http://localhost:8080", "base URL of the food store API")
		email    = fs.String("email", "", "account email, used when -token is empty")
		password = fs.String("password", "", "account password")
		token    = fs.String("token", "", "bearer token")
		orderID  = fs.Int("order", 0, "order to rate")
		foodID   = fs.Int("food", 0, "food from that order")
		rating   = fs.Int("rating", 0, "rating from 1 to 5")
		comment  = fs.String("comment", "", "optional comment")
		timeout  = fs.Duration("timeout", 15*time.Second, "overall request timeout")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *orderID <= 0 || *foodID <= 0 {
		fmt.Fprintln(stderr, "-order and -food are required")
		return 2
	}
	if *token == "" && (*email == "" || *password == "") {
		fmt.Fprintln(stderr, "either -token or -email and -password are required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.New(*api, client.WithToken(*token))
	if *token == "" {
		if _, err := c.Login(ctx, *email, *password); err != nil {
			fmt.Fprintln(stderr, "login failed:", err)
			return 1
		}
	}

	food, err := c.GetFood(ctx, *foodID)
	if err != nil {
		fmt.Fprintln(stderr, "cannot load food:", err)
		return 1
	}
	order, err := c.GetOrder(ctx, *orderID)
	if err != nil {
		fmt.Fprintln(stderr, "cannot load order:", err)
		return 1
	}

	form := ratingform.New(c, ratingform.WriterNotifier{W: stdout})
	form.Open(food)
	if err := form.Select(*rating); err != nil {
		fmt.Fprintln(stderr, "invalid -rating:", err)
		return 2
	}
	form.SetComment(*comment)
	printView(stdout, form.View())

	if outcome := form.Submit(ctx, &order); outcome != ratingform.OutcomeSent {
		return 1
	}
	return 0
}

func printView(w io.Writer, v ratingform.View) {
	fmt.Fprintln(w, v.Title)
	fmt.Fprintln(w, v.Subject)
	faces := make([]string, 0, len(v.Levels))
	for _, lv := range v.Levels {
		face := lv.Label + ":" + lv.Icon
		if lv.Selected {
			face = "[" + face + "]"
		}
		faces = append(faces, face)
	}
	fmt.Fprintln(w, strings.Join(faces, "  "))
	if v.Comment != "" {
		fmt.Fprintf(w, "%q\n", v.Comment)
	}
}
