package core

// ResponseTable maps keywords to canned responses. Definition order is part
// of the contract: matchers scan it front to back and the first hit wins.
type ResponseTable struct {
	keys    []string
	entries map[string]string
}

// ResponseEntry is one keyword/response pair.
type ResponseEntry struct {
	Keyword  string `json:"keyword"`
	Response string `json:"response"`
}

func NewResponseTable(entries ...ResponseEntry) *ResponseTable {
	t := &ResponseTable{entries: make(map[string]string, len(entries))}
	for _, e := range entries {
		t.Set(e.Keyword, e.Response)
	}
	return t
}

// Set adds a pair at the end of the table or overwrites an existing
// keyword in place. Empty keywords are ignored.
func (t *ResponseTable) Set(keyword, response string) {
	if keyword == "" {
		return
	}
	if _, exists := t.entries[keyword]; !exists {
		t.keys = append(t.keys, keyword)
	}
	t.entries[keyword] = response
}

func (t *ResponseTable) Get(keyword string) (string, bool) {
	r, ok := t.entries[keyword]
	return r, ok
}

// Keys returns the keywords in definition order.
func (t *ResponseTable) Keys() []string {
	return append([]string(nil), t.keys...)
}

func (t *ResponseTable) Entries() []ResponseEntry {
	out := make([]ResponseEntry, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, ResponseEntry{Keyword: k, Response: t.entries[k]})
	}
	return out
}

func (t *ResponseTable) Len() int { return len(t.keys) }

// Tables are the two process-wide response tables.
type Tables struct {
	Output *ResponseTable
	Chat   *ResponseTable
}

func DefaultTables() Tables {
	return Tables{
		Output: NewResponseTable(DefaultOutputResponses()...),
		Chat:   NewResponseTable(DefaultChatResponses()...),
	}
}

const (
	// DefaultKeyword names the output table's fallback entry.
	DefaultKeyword = "default"

	ChatFallback = `I am a simple demo chatbot, so I can only answer basic questions. Try asking "What is AI?" or "Tell me about gravity". Real AI chatbots can understand and respond to almost anything!`
)

const (
	aiDefinition = "AI (Artificial Intelligence) is when computers are programmed to do tasks that normally need human intelligence - like understanding language, recognizing images, or making decisions. Think of it like teaching a computer to think in some ways like a human!"
	gravityChat  = "Gravity is a force of attraction between objects. The Earth's gravity pulls everything toward its center, which is why things fall down when you drop them. The Moon's gravity is weaker, which is why astronauts can bounce around on the Moon!"
)

// DefaultOutputResponses is the generation demo table in definition order.
func DefaultOutputResponses() []ResponseEntry {
	return []ResponseEntry{
		{"gravity", "Gravity is a force that pulls objects toward each other. On Earth, it pulls everything toward the ground. This is why when you drop something, it falls down instead of floating away!"},
		{"water", "Water is a clear liquid made of tiny molecules. Each molecule has two hydrogen atoms and one oxygen atom (H2O). Water is essential for all life on Earth and covers about 71% of our planet."},
		{"photosynthesis", "Photosynthesis is how plants make their food! Plants use sunlight, water, and carbon dioxide from the air to create sugar (their food) and release oxygen. This is why plants are so important - they give us oxygen to breathe!"},
		{"atom", "An atom is the smallest piece of matter. Everything around you is made of atoms! Each atom has a center called the nucleus, with tiny particles called electrons moving around it."},
		{"energy", "Energy is the ability to do work or make things happen. It comes in many forms like light, heat, and movement. Energy cannot be created or destroyed - it can only change from one form to another!"},
		{"dna", "DNA is like a recipe book inside every living cell. It contains instructions for how to build and run a living thing. DNA looks like a twisted ladder (called a double helix) and is passed from parents to children."},
		{DefaultKeyword, "That is a great question! AI systems like me work by looking at patterns from training data. When you ask something, I try to find the most helpful response based on what I have learned. The answer is built word by word!"},
	}
}

// DefaultChatResponses is the chatbot table in definition order.
func DefaultChatResponses() []ResponseEntry {
	return []ResponseEntry{
		{"what is ai", aiDefinition},
		{"what is artificial intelligence", aiDefinition},
		{"hello", `Hello! Nice to meet you! I am a demo chatbot. Ask me questions like "What is AI?" or "Tell me about gravity".`},
		{"hi", "Hi there! Great to see you! Feel free to ask me simple questions about science or AI."},
		{"gravity", gravityChat},
		{"tell me about gravity", gravityChat},
		{"machine learning", "Machine Learning is a type of AI where computers learn from examples instead of being given exact rules. Imagine teaching a child to recognize cats by showing them many pictures of cats - the child learns the pattern. Machine Learning works similarly!"},
		{"what is ml", "Machine Learning (ML) is a type of AI where computers learn from examples instead of being given exact rules. Imagine teaching a child to recognize cats by showing them many pictures of cats - the child learns the pattern. Machine Learning works similarly!"},
		{"how do you work", "I work by matching your question with patterns I was trained to recognize. When you type something, I look for keywords and return a relevant response. Real AI chatbots like ChatGPT are much more advanced - they can generate unique responses to any question!"},
		{"chatgpt", "ChatGPT is a famous AI chatbot made by OpenAI. It uses a large language model that was trained on huge amounts of text from the internet. It can answer questions, write stories, help with coding, and much more!"},
		{"thank you", "You are welcome! I hope this demo helped you understand how chatbots work. Feel free to ask more questions!"},
		{"thanks", "You are welcome! Happy learning!"},
		{"physics", "Physics is the science of matter, energy, and how they interact. AI is helping physicists analyze data from experiments, run simulations, and even discover new particles! For example, AI helped find patterns in data from the Large Hadron Collider."},
		{"math", "Mathematics is the study of numbers, shapes, and patterns. AI can help solve math problems step by step, create visualizations of functions, and even generate practice problems. Tools like Wolfram Alpha use AI to solve complex equations!"},
		{"biology", "Biology is the study of living things. AI is revolutionizing biology by predicting protein structures (AlphaFold), analyzing DNA sequences, and helping discover new medicines. AI can also identify diseases from medical images!"},
		{"protein", "Proteins are large molecules that do most of the work in our cells. AlphaFold, an AI by Google DeepMind, can predict how proteins fold into their 3D shapes - something that used to take years of lab work. This helps scientists understand diseases better!"},
		{"alphafold", "AlphaFold is an AI system made by Google DeepMind that predicts the 3D shape of proteins from their amino acid sequence. This was a huge breakthrough in biology! AlphaFold has predicted structures for over 200 million proteins, helping scientists worldwide."},
	}
}
