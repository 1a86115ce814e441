package memory

import "trivia-game-service/internal/domain"

// SampleQuestions is the built-in question bank used when no database is configured.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		q("e01", domain.DifficultyEasy, "Math", "What is 2 + 2?", "4", "3", "5", "6"),
		q("e02", domain.DifficultyEasy, "Geography", "What is the capital of France?", "Paris", "Berlin", "Madrid", "Rome"),
		q("e03", domain.DifficultyEasy, "Science", "Water freezes at 0 degrees on which scale?", "Celsius", "Fahrenheit", "Kelvin"),
		q("e04", domain.DifficultyEasy, "Animals", "How many legs does a spider have?", "8", "6", "10", "12"),
		q("e05", domain.DifficultyEasy, "Science", "The Sun is a star.", "True", "False"),
		q("e06", domain.DifficultyEasy, "Geography", "Which ocean is the largest?", "Pacific", "Atlantic", "Indian", "Arctic"),
		q("e07", domain.DifficultyEasy, "Art", "What colour do you get by mixing blue and yellow?", "Green", "Purple", "Orange"),
		q("e08", domain.DifficultyEasy, "Math", "How many sides does a hexagon have?", "6", "5", "7", "8"),
		q("e09", domain.DifficultyEasy, "Music", "How many strings does a standard guitar have?", "6", "4", "5", "7"),
		q("e10", domain.DifficultyEasy, "Calendar", "How many days are in a leap year?", "366", "365", "364"),

		q("m01", domain.DifficultyMedium, "Science", "What is the chemical symbol for gold?", "Au", "Ag", "Gd", "Go"),
		q("m02", domain.DifficultyMedium, "History", "In which year did the Berlin Wall fall?", "1989", "1987", "1991", "1985"),
		q("m03", domain.DifficultyMedium, "Geography", "What is the capital of Australia?", "Canberra", "Sydney", "Melbourne", "Perth"),
		q("m04", domain.DifficultyMedium, "Science", "Which planet has the most moons?", "Saturn", "Jupiter", "Uranus", "Neptune"),
		q("m05", domain.DifficultyMedium, "Literature", "Who wrote \"Pride and Prejudice\"?", "Jane Austen", "Charlotte Bronte", "Mary Shelley", "George Eliot"),
		q("m06", domain.DifficultyMedium, "Computing", "How many bits are in a byte?", "8", "4", "16", "32"),
		q("m07", domain.DifficultyMedium, "Science", "What gas do plants absorb for photosynthesis?", "Carbon dioxide", "Oxygen", "Nitrogen", "Hydrogen"),
		q("m08", domain.DifficultyMedium, "Geography", "The Nile flows into the Mediterranean Sea.", "True", "False"),
		q("m09", domain.DifficultyMedium, "Math", "What is the square root of 144?", "12", "14", "11", "13"),
		q("m10", domain.DifficultyMedium, "Art", "Who painted the Mona Lisa?", "Leonardo da Vinci", "Michelangelo", "Raphael", "Titian"),

		q("h01", domain.DifficultyHard, "Science", "What is the atomic number of tungsten?", "74", "72", "76", "78"),
		q("h02", domain.DifficultyHard, "History", "Which treaty ended the Thirty Years' War?", "Peace of Westphalia", "Treaty of Utrecht", "Treaty of Versailles", "Peace of Augsburg"),
		q("h03", domain.DifficultyHard, "Computing", "In what year was the Go programming language announced?", "2009", "2007", "2011", "2012"),
		q("h04", domain.DifficultyHard, "Geography", "What is the capital of Kazakhstan?", "Astana", "Almaty", "Bishkek", "Tashkent"),
		q("h05", domain.DifficultyHard, "Math", "What is the smallest perfect number?", "6", "28", "12", "1"),
		q("h06", domain.DifficultyHard, "Science", "Which element has the highest melting point?", "Carbon", "Tungsten", "Rhenium", "Osmium"),
		q("h07", domain.DifficultyHard, "Literature", "Who wrote \"The Master and Margarita\"?", "Mikhail Bulgakov", "Leo Tolstoy", "Anton Chekhov", "Ivan Turgenev"),
		q("h08", domain.DifficultyHard, "Music", "How many symphonies did Beethoven complete?", "9", "7", "10", "12"),
		q("h09", domain.DifficultyHard, "Science", "Light takes about eight minutes to travel from the Sun to Earth.", "True", "False"),
		q("h10", domain.DifficultyHard, "History", "Who was the first emperor of the Holy Roman Empire?", "Charlemagne", "Otto I", "Frederick I", "Charles V"),
	}
}

func q(id string, difficulty domain.Difficulty, category, text, answer string, wrong ...string) domain.Question {
	return domain.Question{
		ID:         id,
		Text:       text,
		Options:    append([]string{answer}, wrong...),
		Answer:     answer,
		Difficulty: difficulty,
		Category:   category,
	}
}
