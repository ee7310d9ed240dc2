package i18n

// Key identifies a UI string.
type Key string

const (
	TitleLanguage   Key = "title.language"
	TitleOnboarding Key = "title.onboarding"
	TitlePlacement  Key = "title.placement"
	TitleHome       Key = "title.home"
	TitleChat       Key = "title.chat"
	TitleVocab      Key = "title.vocab"
	TitleSettings   Key = "title.settings"

	ChooseLanguage  Key = "language.choose"
	AskName         Key = "onboarding.ask_name"
	NamePlaceholder Key = "onboarding.placeholder"
	NameRequired    Key = "onboarding.required"

	PlacementIntro Key = "placement.intro"
	GeneratingTest Key = "placement.generating"
	Evaluating     Key = "placement.evaluating"
	QuestionNofM   Key = "quiz.question_n_of_m"
	YourLevel      Key = "placement.your_level"
	Continue       Key = "common.continue"
	PressRetry     Key = "common.press_retry"
	Loading        Key = "common.loading"

	Greeting      Key = "home.greeting"
	DailyTips     Key = "home.tips"
	Challenge     Key = "home.challenge"
	LoadingTips   Key = "home.loading"
	MenuChat      Key = "home.menu.chat"
	MenuVocab     Key = "home.menu.vocab"
	MenuRetake    Key = "home.menu.retake"
	MenuLanguage  Key = "home.menu.language"
	MenuSettings  Key = "home.menu.settings"
	MenuQuit      Key = "home.menu.quit"
	ChatInput     Key = "chat.placeholder"
	ChatTyping    Key = "chat.typing"
	ChatEmpty     Key = "chat.empty"
	ChatYou       Key = "chat.you"
	ChatTutor     Key = "chat.tutor"
	QuizGenerate  Key = "vocab.generating"
	QuizScore     Key = "vocab.score"
	WordsReview   Key = "vocab.review"
	Feedback      Key = "vocab.feedback"
	ThemeLabel    Key = "settings.theme"
	ResetProfile  Key = "settings.reset"
	ConfirmReset  Key = "settings.confirm_reset"
	NotConfigured Key = "error.not_configured"
	QuizNext      Key = "vocab.next"
	QuizRestart   Key = "vocab.restart"
	BackHome      Key = "common.back_home"
)

var catalog = map[string]map[Key]string{
	"en": {
		TitleLanguage:   "Language",
		TitleOnboarding: "Welcome",
		TitlePlacement:  "Placement Test",
		TitleHome:       "Home",
		TitleChat:       "Tutor Chat",
		TitleVocab:      "Vocabulary Quiz",
		TitleSettings:   "Settings",
		ChooseLanguage:  "Choose your language",
		AskName:         "What's your name?",
		NamePlaceholder: "Your name",
		NameRequired:    "Please enter your name.",
		PlacementIntro:  "Let's find your English level, %s.",
		GeneratingTest:  "Preparing your placement test…",
		Evaluating:      "Evaluating your answers…",
		QuestionNofM:    "Question %d of %d",
		YourLevel:       "Your level: %s",
		Continue:        "Continue",
		PressRetry:      "Press r to retry",
		Loading:         "Loading…",
		Greeting:        "Hello, %s! Level: %s",
		DailyTips:       "Daily tips",
		Challenge:       "Today's challenge",
		LoadingTips:     "Loading today's tips…",
		MenuChat:        "Chat with your tutor",
		MenuVocab:       "Vocabulary quiz",
		MenuRetake:      "Retake placement test",
		MenuLanguage:    "Change language",
		MenuSettings:    "Settings",
		MenuQuit:        "Quit",
		ChatInput:       "Type a message…",
		ChatTyping:      "Tutor is typing…",
		ChatEmpty:       "Say hello to start practising!",
		ChatYou:         "You",
		ChatTutor:       "Tutor",
		QuizGenerate:    "Preparing your quiz…",
		QuizScore:       "You scored %d / %d",
		WordsReview:     "Words to review",
		Feedback:        "Feedback",
		ThemeLabel:      "Theme",
		ResetProfile:    "Reset profile",
		ConfirmReset:    "This deletes your name, level and chat history. Continue? (y/n)",
		NotConfigured:   "No AI provider is configured. Set GEMINI_API_KEY (or another provider key) and restart.",
		QuizNext:        "Next",
		QuizRestart:     "New quiz",
		BackHome:        "Back to home",
	},
	"es": {
		TitleLanguage:   "Idioma",
		TitleOnboarding: "Bienvenida",
		TitlePlacement:  "Prueba de nivel",
		TitleHome:       "Inicio",
		TitleChat:       "Chat con el tutor",
		TitleVocab:      "Prueba de vocabulario",
		TitleSettings:   "Ajustes",
		ChooseLanguage:  "Elige tu idioma",
		AskName:         "¿Cómo te llamas?",
		NamePlaceholder: "Tu nombre",
		NameRequired:    "Por favor, escribe tu nombre.",
		PlacementIntro:  "Vamos a descubrir tu nivel de inglés, %s.",
		GeneratingTest:  "Preparando tu prueba de nivel…",
		Evaluating:      "Evaluando tus respuestas…",
		QuestionNofM:    "Pregunta %d de %d",
		YourLevel:       "Tu nivel: %s",
		Continue:        "Continuar",
		PressRetry:      "Pulsa r para reintentar",
		Loading:         "Cargando…",
		Greeting:        "¡Hola, %s! Nivel: %s",
		DailyTips:       "Consejos del día",
		Challenge:       "Reto de hoy",
		LoadingTips:     "Cargando los consejos de hoy…",
		MenuChat:        "Hablar con tu tutor",
		MenuVocab:       "Prueba de vocabulario",
		MenuRetake:      "Repetir la prueba de nivel",
		MenuLanguage:    "Cambiar idioma",
		MenuSettings:    "Ajustes",
		MenuQuit:        "Salir",
		ChatInput:       "Escribe un mensaje…",
		ChatTyping:      "El tutor está escribiendo…",
		ChatEmpty:       "¡Saluda para empezar a practicar!",
		ChatYou:         "Tú",
		ChatTutor:       "Tutor",
		QuizGenerate:    "Preparando tu prueba…",
		QuizScore:       "Has acertado %d de %d",
		WordsReview:     "Palabras para repasar",
		Feedback:        "Comentario",
		ThemeLabel:      "Tema",
		ResetProfile:    "Restablecer perfil",
		ConfirmReset:    "Se borrarán tu nombre, tu nivel y el historial del chat. ¿Continuar? (y/n)",
		NotConfigured:   "No hay ningún proveedor de IA configurado. Define GEMINI_API_KEY (u otra clave) y reinicia.",
		QuizNext:        "Siguiente",
		QuizRestart:     "Nueva prueba",
		BackHome:        "Volver al inicio",
	},
	"de": {
		TitleLanguage:   "Sprache",
		TitleOnboarding: "Willkommen",
		TitlePlacement:  "Einstufungstest",
		TitleHome:       "Start",
		TitleChat:       "Tutor-Chat",
		TitleVocab:      "Vokabelquiz",
		TitleSettings:   "Einstellungen",
		ChooseLanguage:  "Wähle deine Sprache",
		AskName:         "Wie heißt du?",
		NamePlaceholder: "Dein Name",
		NameRequired:    "Bitte gib deinen Namen ein.",
		PlacementIntro:  "Lass uns dein Englischniveau bestimmen, %s.",
		GeneratingTest:  "Dein Einstufungstest wird vorbereitet…",
		Evaluating:      "Deine Antworten werden ausgewertet…",
		QuestionNofM:    "Frage %d von %d",
		YourLevel:       "Dein Niveau: %s",
		Continue:        "Weiter",
		PressRetry:      "Drücke r zum Wiederholen",
		Loading:         "Wird geladen…",
		Greeting:        "Hallo, %s! Niveau: %s",
		DailyTips:       "Tipps des Tages",
		Challenge:       "Heutige Herausforderung",
		LoadingTips:     "Die heutigen Tipps werden geladen…",
		MenuChat:        "Mit deinem Tutor chatten",
		MenuVocab:       "Vokabelquiz",
		MenuRetake:      "Einstufungstest wiederholen",
		MenuLanguage:    "Sprache ändern",
		MenuSettings:    "Einstellungen",
		MenuQuit:        "Beenden",
		ChatInput:       "Nachricht eingeben…",
		ChatTyping:      "Der Tutor schreibt…",
		ChatEmpty:       "Sag Hallo, um mit dem Üben zu beginnen!",
		ChatYou:         "Du",
		ChatTutor:       "Tutor",
		QuizGenerate:    "Dein Quiz wird vorbereitet…",
		QuizScore:       "Du hast %d von %d richtig",
		WordsReview:     "Wörter zum Wiederholen",
		Feedback:        "Rückmeldung",
		ThemeLabel:      "Design",
		ResetProfile:    "Profil zurücksetzen",
		ConfirmReset:    "Name, Niveau und Chatverlauf werden gelöscht. Fortfahren? (y/n)",
		NotConfigured:   "Kein KI-Anbieter konfiguriert. Setze GEMINI_API_KEY (oder einen anderen Schlüssel) und starte neu.",
		QuizNext:        "Weiter",
		QuizRestart:     "Neues Quiz",
		BackHome:        "Zurück zur Startseite",
	},
	"fr": {
		TitleLanguage:   "Langue",
		TitleOnboarding: "Bienvenue",
		TitlePlacement:  "Test de niveau",
		TitleHome:       "Accueil",
		TitleChat:       "Discussion avec le tuteur",
		TitleVocab:      "Quiz de vocabulaire",
		TitleSettings:   "Paramètres",
		ChooseLanguage:  "Choisissez votre langue",
		AskName:         "Comment vous appelez-vous ?",
		NamePlaceholder: "Votre prénom",
		NameRequired:    "Veuillez saisir votre prénom.",
		PlacementIntro:  "Évaluons votre niveau d'anglais, %s.",
		GeneratingTest:  "Préparation de votre test de niveau…",
		Evaluating:      "Évaluation de vos réponses…",
		QuestionNofM:    "Question %d sur %d",
		YourLevel:       "Votre niveau : %s",
		Continue:        "Continuer",
		PressRetry:      "Appuyez sur r pour réessayer",
		Loading:         "Chargement…",
		Greeting:        "Bonjour, %s ! Niveau : %s",
		DailyTips:       "Conseils du jour",
		Challenge:       "Défi du jour",
		LoadingTips:     "Chargement des conseils du jour…",
		MenuChat:        "Discuter avec votre tuteur",
		MenuVocab:       "Quiz de vocabulaire",
		MenuRetake:      "Repasser le test de niveau",
		MenuLanguage:    "Changer de langue",
		MenuSettings:    "Paramètres",
		MenuQuit:        "Quitter",
		ChatInput:       "Écrivez un message…",
		ChatTyping:      "Le tuteur écrit…",
		ChatEmpty:       "Dites bonjour pour commencer !",
		ChatYou:         "Vous",
		ChatTutor:       "Tuteur",
		QuizGenerate:    "Préparation de votre quiz…",
		QuizScore:       "Score : %d / %d",
		WordsReview:     "Mots à revoir",
		Feedback:        "Commentaire",
		ThemeLabel:      "Thème",
		ResetProfile:    "Réinitialiser le profil",
		ConfirmReset:    "Votre prénom, votre niveau et l'historique seront supprimés. Continuer ? (y/n)",
		NotConfigured:   "Aucun fournisseur d'IA n'est configuré. Définissez GEMINI_API_KEY (ou une autre clé) puis relancez.",
		QuizNext:        "Suivant",
		QuizRestart:     "Nouveau quiz",
		BackHome:        "Retour à l'accueil",
	},
	"pt": {
		TitleLanguage:   "Idioma",
		TitleOnboarding: "Boas-vindas",
		TitlePlacement:  "Teste de nível",
		TitleHome:       "Início",
		TitleChat:       "Conversa com o tutor",
		TitleVocab:      "Quiz de vocabulário",
		TitleSettings:   "Configurações",
		ChooseLanguage:  "Escolha seu idioma",
		AskName:         "Qual é o seu nome?",
		NamePlaceholder: "Seu nome",
		NameRequired:    "Por favor, digite seu nome.",
		PlacementIntro:  "Vamos descobrir seu nível de inglês, %s.",
		GeneratingTest:  "Preparando seu teste de nível…",
		Evaluating:      "Avaliando suas respostas…",
		QuestionNofM:    "Pergunta %d de %d",
		YourLevel:       "Seu nível: %s",
		Continue:        "Continuar",
		PressRetry:      "Pressione r para tentar novamente",
		Loading:         "Carregando…",
		Greeting:        "Olá, %s! Nível: %s",
		DailyTips:       "Dicas do dia",
		Challenge:       "Desafio de hoje",
		LoadingTips:     "Carregando as dicas de hoje…",
		MenuChat:        "Conversar com seu tutor",
		MenuVocab:       "Quiz de vocabulário",
		MenuRetake:      "Refazer o teste de nível",
		MenuLanguage:    "Mudar idioma",
		MenuSettings:    "Configurações",
		MenuQuit:        "Sair",
		ChatInput:       "Digite uma mensagem…",
		ChatTyping:      "O tutor está digitando…",
		ChatEmpty:       "Diga olá para começar a praticar!",
		ChatYou:         "Você",
		ChatTutor:       "Tutor",
		QuizGenerate:    "Preparando seu quiz…",
		QuizScore:       "Você acertou %d de %d",
		WordsReview:     "Palavras para revisar",
		Feedback:        "Comentário",
		ThemeLabel:      "Tema",
		ResetProfile:    "Redefinir perfil",
		ConfirmReset:    "Seu nome, nível e histórico do chat serão apagados. Continuar? (y/n)",
		NotConfigured:   "Nenhum provedor de IA configurado. Defina GEMINI_API_KEY (ou outra chave) e reinicie.",
		QuizNext:        "Próxima",
		QuizRestart:     "Novo quiz",
		BackHome:        "Voltar ao início",
	},
	"vi": {
		TitleLanguage:   "Ngôn ngữ",
		TitleOnboarding: "Chào mừng",
		TitlePlacement:  "Bài kiểm tra trình độ",
		TitleHome:       "Trang chủ",
		TitleChat:       "Trò chuyện với gia sư",
		TitleVocab:      "Trắc nghiệm từ vựng",
		TitleSettings:   "Cài đặt",
		ChooseLanguage:  "Chọn ngôn ngữ của bạn",
		AskName:         "Bạn tên là gì?",
		NamePlaceholder: "Tên của bạn",
		NameRequired:    "Vui lòng nhập tên của bạn.",
		PlacementIntro:  "Hãy cùng xác định trình độ tiếng Anh của bạn, %s.",
		GeneratingTest:  "Đang chuẩn bị bài kiểm tra…",
		Evaluating:      "Đang đánh giá câu trả lời…",
		QuestionNofM:    "Câu %d / %d",
		YourLevel:       "Trình độ của bạn: %s",
		Continue:        "Tiếp tục",
		PressRetry:      "Nhấn r để thử lại",
		Loading:         "Đang tải…",
		Greeting:        "Xin chào, %s! Trình độ: %s",
		DailyTips:       "Mẹo hôm nay",
		Challenge:       "Thử thách hôm nay",
		LoadingTips:     "Đang tải mẹo hôm nay…",
		MenuChat:        "Trò chuyện với gia sư",
		MenuVocab:       "Trắc nghiệm từ vựng",
		MenuRetake:      "Làm lại bài kiểm tra trình độ",
		MenuLanguage:    "Đổi ngôn ngữ",
		MenuSettings:    "Cài đặt",
		MenuQuit:        "Thoát",
		ChatInput:       "Nhập tin nhắn…",
		ChatTyping:      "Gia sư đang trả lời…",
		ChatEmpty:       "Hãy chào để bắt đầu luyện tập!",
		ChatYou:         "Bạn",
		ChatTutor:       "Gia sư",
		QuizGenerate:    "Đang chuẩn bị bài trắc nghiệm…",
		QuizScore:       "Bạn đúng %d / %d",
		WordsReview:     "Từ cần ôn lại",
		Feedback:        "Nhận xét",
		ThemeLabel:      "Giao diện",
		ResetProfile:    "Đặt lại hồ sơ",
		ConfirmReset:    "Tên, trình độ và lịch sử trò chuyện sẽ bị xóa. Tiếp tục? (y/n)",
		NotConfigured:   "Chưa cấu hình nhà cung cấp AI. Hãy đặt GEMINI_API_KEY (hoặc khóa khác) rồi khởi động lại.",
		QuizNext:        "Tiếp theo",
		QuizRestart:     "Bài kiểm tra mới",
		BackHome:        "Về trang chủ",
	},
}
