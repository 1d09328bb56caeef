package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivial-api/internal/config"
	"github.com/yourusername/trivial-api/internal/domain/entity"
	pgRepo "github.com/yourusername/trivial-api/internal/repository/postgres"
	"github.com/yourusername/trivial-api/internal/service"
	"github.com/yourusername/trivial-api/pkg/database"
)

// Формат файла: category, difficulty, question_text, correct_answer
// и далее произвольное число неправильных вариантов.
// Первая строка — заголовок, пропускается.

func main() {
	var (
		filePath   = flag.String("file", "", "путь к файлу с вопросами (.csv или .xlsx)")
		configPath = flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
		sheet      = flag.String("sheet", "Sheet1", "имя листа для .xlsx")
	)
	flag.Parse()

	if *filePath == "" {
		log.Println("Не указан файл с вопросами: -file")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(*filePath)) {
	case ".csv":
		rows, err = readCSV(*filePath)
	case ".xlsx":
		rows, err = readXLSX(*filePath, *sheet)
	default:
		log.Printf("Неподдерживаемый формат файла: %s", *filePath)
		os.Exit(2)
	}
	if err != nil {
		log.Printf("Failed to read %s: %v", *filePath, err)
		os.Exit(1)
	}

	questions, skipped := parseQuestions(rows)
	if len(questions) == 0 {
		log.Println("В файле не найдено ни одного валидного вопроса")
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Кеш для импорта не нужен
	questionService := service.NewQuestionService(pgRepo.NewQuestionRepo(db), nil, 0)

	if err := questionService.ImportQuestions(questions); err != nil {
		log.Printf("Failed to import questions: %v", err)
		os.Exit(1)
	}

	log.Printf("Импортировано вопросов: %d (пропущено строк: %d)", len(questions), skipped)
}

// readCSV читает все строки CSV-файла
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Строки с разным числом вариантов ответа

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readXLSX читает все строки указанного листа XLSX-файла
func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close %s: %v", path, err)
		}
	}()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// parseQuestions преобразует строки файла в сущности вопросов.
// Строки с неизвестной категорией/сложностью или без текста пропускаются
// с логированием; возвращается число пропущенных строк.
func parseQuestions(rows [][]string) ([]entity.Question, int) {
	questions := make([]entity.Question, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			// Заголовок
			continue
		}
		if len(row) < 4 {
			log.Printf("Строка %d: ожидается минимум 4 колонки, пропущена", i+1)
			skipped++
			continue
		}

		category, err := entity.ParseCategory(strings.TrimSpace(row[0]))
		if err != nil {
			log.Printf("Строка %d: %v, пропущена", i+1, err)
			skipped++
			continue
		}
		difficulty, err := entity.ParseDifficulty(strings.TrimSpace(row[1]))
		if err != nil {
			log.Printf("Строка %d: %v, пропущена", i+1, err)
			skipped++
			continue
		}

		text := strings.TrimSpace(row[2])
		correct := strings.TrimSpace(row[3])
		if text == "" || correct == "" {
			log.Printf("Строка %d: пустой текст вопроса или ответа, пропущена", i+1)
			skipped++
			continue
		}

		answers := []entity.Answer{{AnswerText: correct, IsCorrect: true}}
		for _, wrong := range row[4:] {
			wrong = strings.TrimSpace(wrong)
			if wrong == "" {
				continue
			}
			answers = append(answers, entity.Answer{AnswerText: wrong, IsCorrect: false})
		}

		questions = append(questions, entity.Question{
			Category:     category,
			Difficulty:   difficulty,
			QuestionText: text,
			Answers:      answers,
		})
	}

	return questions, skipped
}
