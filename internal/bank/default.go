package bank

// defaultQuestions is the built-in catalog.
var defaultQuestions = []Question{
	{
		ID:          1,
		Category:    CategoryMath,
		Prompt:      "What is 7 × 8?",
		Choices:     []string{"54", "56", "48", "64"},
		Answer:      1,
		Explanation: "7 times 8 is 56.",
	},
	{
		ID:          2,
		Category:    CategoryMath,
		Prompt:      "What is the derivative of x²?",
		Choices:     []string{"x", "2x", "x²", "2"},
		Answer:      1,
		Explanation: "d/dx x² = 2x.",
	},
	{
		ID:          3,
		Category:    CategoryScience,
		Prompt:      "What gas do plants primarily absorb?",
		Choices:     []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"},
		Answer:      2,
		Explanation: "Plants absorb CO₂ for photosynthesis.",
	},
	{
		ID:          4,
		Category:    CategoryScience,
		Prompt:      "Water freezes at what temperature (°C)?",
		Choices:     []string{"0", "32", "-1", "100"},
		Answer:      0,
		Explanation: "Water freezes at 0°C.",
	},
	{
		ID:          5,
		Category:    CategoryHistory,
		Prompt:      "Who discovered America (commonly credited)?",
		Choices:     []string{"Christopher Columbus", "Vasco da Gama", "Marco Polo", "Leif Erikson"},
		Answer:      0,
		Explanation: "Christopher Columbus is commonly credited in many curricula.",
	},
	{
		ID:          6,
		Category:    CategoryHistory,
		Prompt:      "The Renaissance began in which country?",
		Choices:     []string{"France", "Italy", "England", "Germany"},
		Answer:      1,
		Explanation: "The Renaissance began in Italy.",
	},
	{
		ID:          7,
		Category:    CategoryMath,
		Prompt:      "What is the next prime after 7?",
		Choices:     []string{"9", "11", "13", "17"},
		Answer:      1,
		Explanation: "11 is the next prime after 7.",
	},
	{
		ID:          8,
		Category:    CategoryScience,
		Prompt:      "What is H₂O commonly called?",
		Choices:     []string{"Salt", "Oxygen", "Water", "Hydrogen"},
		Answer:      2,
		Explanation: "H₂O is water.",
	},
	{
		ID:          9,
		Category:    CategoryHistory,
		Prompt:      "The Great Wall is primarily located in which country?",
		Choices:     []string{"India", "China", "Japan", "Korea"},
		Answer:      1,
		Explanation: "The Great Wall is in China.",
	},
	{
		ID:          10,
		Category:    CategoryScience,
		Prompt:      "Which planet is known as the Red Planet?",
		Choices:     []string{"Earth", "Jupiter", "Mars", "Venus"},
		Answer:      2,
		Explanation: "Mars is the Red Planet.",
	},
}

// Default returns the built-in question bank.
func Default() *Bank {
	b, err := New(defaultQuestions)
	if err != nil {
		panic("bank: invalid built-in catalog: " + err.Error())
	}
	return b
}
