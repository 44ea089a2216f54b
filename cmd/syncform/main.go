// syncform replays a form file against a running millflow server: it loads
// the order's existing records, replaces them with the items from the file
// (delete-then-recreate) and prints the reconciled result. Useful for bulk
// corrections and for smoke-testing the API from the shell.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"millflow/pkg/orderapi"
	"millflow/pkg/orderform"
)

type fileRow struct {
	Quantity string `json:"quantity"`
	Quality  string `json:"quality"`
	Process  string `json:"process"`
}

type fileItem struct {
	Date       string    `json:"date"`
	RefNo      string    `json:"refNo"`
	Mill       string    `json:"mill"`
	Quantity   string    `json:"quantity"`
	Quality    string    `json:"quality"`
	Process    string    `json:"process"`
	Additional []fileRow `json:"additional"`
}

type formFile struct {
	Items []fileItem `json:"items"`
}

func main() {
	base := flag.String("base", "http://localhost:8081", "server base URL")
	token := flag.String("token", os.Getenv("MILLFLOW_TOKEN"), "bearer token (defaults to MILLFLOW_TOKEN)")
	order := flag.String("order", "", "order id")
	resource := flag.String("resource", "mill-inputs", "mill-inputs | mill-outputs | dispatches")
	file := flag.String("file", "", "form JSON file")
	flag.Parse()

	if *order == "" || *file == "" || *token == "" {
		fmt.Println("usage: syncform -order <id> -file <form.json> [-resource mill-inputs] [-base URL] [-token TOKEN]")
		os.Exit(2)
	}

	var spec orderapi.ResourceSpec
	switch *resource {
	case "mill-inputs":
		spec = orderapi.MillInputs
	case "mill-outputs":
		spec = orderapi.MillOutputs
	case "dispatches":
		spec = orderapi.Dispatches
	default:
		log.Fatalf("unknown resource %q", *resource)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read form file: %v", err)
	}
	var ff formFile
	if err := json.Unmarshal(raw, &ff); err != nil {
		log.Fatalf("parse form file: %v", err)
	}
	if len(ff.Items) == 0 {
		log.Fatal("form file has no items")
	}

	client := orderapi.New(*base, *token)
	store := client.Records(spec)
	loader := &orderform.Loader{Store: store, Key: spec.Key}
	coord := &orderform.Coordinator{
		Replacer: &orderform.DeleteThenCreate{Store: store},
		Loader:   loader,
	}

	ctx := context.Background()
	st := orderform.NewFormState()
	st.RequireMill = spec.MillField != ""
	st.Items = nil
	for _, fi := range ff.Items {
		it := orderform.NewFormItem()
		it.Date = fi.Date
		it.RefNo = fi.RefNo
		it.Mill = fi.Mill
		it.Quantity = fi.Quantity
		it.Quality = fi.Quality
		it.Process = fi.Process
		for _, r := range fi.Additional {
			it.Additional = append(it.Additional, orderform.AdditionalRow{Quantity: r.Quantity, Quality: r.Quality, Process: r.Process})
		}
		st.Items = append(st.Items, it)
	}

	res := coord.Submit(ctx, st, *order)
	if !res.Success {
		for k, v := range st.Errors {
			fmt.Printf("  %s: %s\n", k, v)
		}
		log.Fatalf("submission failed: %s", res.Message)
	}
	fmt.Printf("replaced records for order %s: %d created, server now holds %d item(s) [%s]\n",
		*order, res.Records, len(st.Items), st.Phase)
}
