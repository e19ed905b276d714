package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// OpeningMessage greets a session whose log is empty.
const OpeningMessage = "Assalamu'alaikum! Ana adalah Zaki, siap membantu antum dengan pertanyaan terkait laporan zakat BAZNAS. " +
	"Silakan tanyakan apa yang ingin antum ketahui tentang laporan zakat BAZNAS, insyaAllah ana siap membantu!"
