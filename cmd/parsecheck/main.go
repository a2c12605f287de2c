// Command parsecheck runs a sample order (or stdin) through the intake
// pipeline and prints the result, for checking extraction and the OpenAI
// connection without starting the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/parse"
	"github.com/SuperShot3/order-form/internal/parse/openai"
)

const sampleOrder = `
Bouquet: Sweet Mix Bouquet — M size
Card message: "Happy Birthday!"
Delivery date: 15/02/2025
Delivery time: 10:00 - 12:00
Recipient name: Jane Doe
Delivery address: 123 Nimman Road, Nimman, Chiang Mai
https://maps.app.goo.gl/abc123
Sender phone: +66 81 234 5678
Preferred contact: WhatsApp
Items total: 1200
Delivery fee: 100
`

func main() {
	useAI := flag.Bool("ai", false, "run the AI extraction branch (needs an API key)")
	fromStdin := flag.Bool("stdin", false, "read order text from stdin instead of the sample")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rawText := sampleOrder
	if *fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("reading stdin: %v", err)
		}
		rawText = string(data)
	}

	extractor := openai.NewExtractor(&cfg.Parser)
	parser := parse.NewParser(extractor)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	if *useAI {
		check := parser.CheckConnection(ctx)
		if !check.OK {
			log.Fatalf("connection check failed: %s", check.Error)
		}
		fmt.Printf("connection ok, model %s\n", check.Model)
	}

	settings := domain.DefaultSettings()
	settings.UseAIParsing = *useAI

	result, err := parser.Parse(ctx, rawText, settings)
	if err != nil {
		log.Fatalf("parse failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encoding result: %v", err)
	}
	fmt.Println(string(out))
}
