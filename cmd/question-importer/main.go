// Bulk-loads questions from a JSON file into a new topic.
//
// Usage:
//
//	question-importer -file questions.json -server 123456789 -topic "Networking basics" [-kind tf|mc|short]
//
// The JSON file holds an array of objects with "question", "answer" and,
// for multiple choice, an "options" map keyed A through D.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"coursequiz/database"
	"coursequiz/models"
	"coursequiz/repositories"

	"github.com/joho/godotenv"
)

func main() {
	filePath := flag.String("file", "", "path to the JSON question file")
	serverID := flag.String("server", "", "server id to import into")
	topicTitle := flag.String("topic", "", "title of the topic to create")
	kindFlag := flag.String("kind", "tf", "question kind: tf, mc or short")
	flag.Parse()

	if *filePath == "" || *serverID == "" || *topicTitle == "" {
		flag.Usage()
		os.Exit(2)
	}

	kind, err := parseKind(*kindFlag)
	if err != nil {
		log.Fatal(err)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var questions []models.GeneratedQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}
	if len(questions) == 0 {
		log.Fatal("No questions found in file")
	}

	fmt.Printf("Found %d questions\n", len(questions))

	topics := repositories.NewTopicRepository(db)
	topicID, err := topics.CreateTopicWithQuestions(*serverID, *topicTitle, "", questions, "", kind)
	if err != nil {
		log.Fatal("Failed to import questions:", err)
	}

	fmt.Printf("\n✓ Imported %d questions into topic %q (%s)\n", len(questions), *topicTitle, topicID)
}

func parseKind(value string) (models.QuestionKind, error) {
	switch value {
	case "tf":
		return models.KindTrueFalse, nil
	case "mc":
		return models.KindMultipleChoice, nil
	case "short":
		return models.KindShortAnswer, nil
	}
	return "", fmt.Errorf("unknown kind %q (expected tf, mc or short)", value)
}
