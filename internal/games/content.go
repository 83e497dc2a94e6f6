package games

// Emotion is one card of the matching game palette
type Emotion struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// EmotionPalette is the fixed set of emotions offered in every matching
// scenario
var EmotionPalette = []Emotion{
	{ID: "happy", Name: "Happy", Emoji: "😊", Color: "from-yellow-400 to-orange-400"},
	{ID: "sad", Name: "Sad", Emoji: "😢", Color: "from-blue-400 to-blue-600"},
	{ID: "angry", Name: "Angry", Emoji: "😠", Color: "from-red-400 to-orange-600"},
	{ID: "scared", Name: "Scared", Emoji: "😰", Color: "from-purple-400 to-purple-600"},
	{ID: "excited", Name: "Excited", Emoji: "🤩", Color: "from-pink-400 to-rose-500"},
	{ID: "calm", Name: "Calm", Emoji: "😌", Color: "from-green-400 to-teal-500"},
}

// MatchingScenario builds a matching scenario offering the whole palette.
// The correct emotion is worth full points, every other one partial points.
func MatchingScenario(id, text, correct, explanation string) Scenario {
	choices := make([]Choice, 0, len(EmotionPalette))
	for _, e := range EmotionPalette {
		points := MirrorPartialPoints
		if e.ID == correct {
			points = MirrorCorrectPoints
		}
		choices = append(choices, Choice{
			ID:      e.ID,
			Text:    e.Name,
			Emotion: e.Name,
			Emoji:   e.Emoji,
			Points:  points,
		})
	}
	return Scenario{
		ID:            id,
		Description:   text,
		Choices:       choices,
		CorrectChoice: correct,
		Explanation:   explanation,
	}
}

// MoodMirrorScenarios returns the built-in matching scenarios
func MoodMirrorScenarios() []Scenario {
	return []Scenario{
		MatchingScenario("sharing", "Your friend shares their favorite toy with you", "happy",
			"When someone is kind and shares with us, it often makes us feel happy and grateful! 💛"),
		MatchingScenario("broken-toy", "Your favorite toy breaks and can't be fixed", "sad",
			"It's normal to feel sad when we lose something we care about. It's okay to cry! 💙"),
		MatchingScenario("turn-taken", "Someone takes your turn without asking", "angry",
			"When things feel unfair, we might feel angry. That's a normal feeling! Remember to use calm words. ❤️"),
		MatchingScenario("loud-noise", "You hear a loud, sudden noise in the dark", "scared",
			"Scary things can make our heart beat fast. It's okay to feel afraid - it helps keep us safe! 💜"),
		MatchingScenario("birthday", "Tomorrow is your birthday party!", "excited",
			"Looking forward to fun things makes us feel excited and full of energy! 🎉"),
		MatchingScenario("cozy-book", "You're reading a cozy book in your favorite spot", "calm",
			"Peaceful moments help us feel calm and relaxed. This is a wonderful feeling! 💚"),
	}
}

// FeelingsQuestScenarios returns the built-in narrative scenarios
func FeelingsQuestScenarios() []Scenario {
	return []Scenario{
		{
			ID:          "playground",
			Title:       "The Playground",
			Description: "You're at the playground and see a new kid sitting alone on a bench looking sad.",
			Choices: []Choice{
				{ID: "talk", Text: "Go talk to them and ask if they want to play", Emotion: "Kindness", Emoji: "💛",
					Feedback: "Great choice! Showing kindness helps others feel welcome!", Points: 3},
				{ID: "ignore", Text: "Ignore them and play with your other friends", Emotion: "Indifference", Emoji: "😐",
					Feedback: "Sometimes people need a friend. Try thinking about how they might feel.", Points: 1},
				{ID: "wave", Text: "Wave at them from far away", Emotion: "Shyness", Emoji: "👋",
					Feedback: "That's a start! Next time, try going a bit closer.", Points: 2},
			},
		},
		{
			ID:          "lost-toy",
			Title:       "The Lost Toy",
			Description: "Your little sibling accidentally breaks your favorite toy.",
			Choices: []Choice{
				{ID: "yell", Text: "Yell at them and storm off", Emotion: "Anger", Emoji: "😠",
					Feedback: "It's okay to feel upset, but yelling might hurt their feelings. Take a deep breath first.", Points: 1},
				{ID: "explain", Text: "Take a deep breath and explain you're sad about it", Emotion: "Calm Communication", Emoji: "💬",
					Feedback: "Wonderful! You managed your feelings and communicated well!", Points: 3},
				{ID: "hide", Text: "Say it's okay even though you're really upset", Emotion: "Hiding Feelings", Emoji: "😶",
					Feedback: "It's important to share how you feel in a kind way.", Points: 2},
			},
		},
		{
			ID:          "test-result",
			Title:       "The Test Result",
			Description: "You studied hard for a test but didn't get the grade you hoped for.",
			Choices: []Choice{
				{ID: "give-up", Text: "Give up and say you're bad at this subject", Emotion: "Defeat", Emoji: "😞",
					Feedback: "Don't give up! Everyone has challenges. What matters is trying again.", Points: 1},
				{ID: "ask-help", Text: "Ask the teacher for help and study differently next time", Emotion: "Growth Mindset", Emoji: "🌱",
					Feedback: "Excellent! Learning from challenges makes you stronger!", Points: 3},
				{ID: "keep-quiet", Text: "Feel sad but don't tell anyone", Emotion: "Isolation", Emoji: "😔",
					Feedback: "It's okay to ask for help when things are hard.", Points: 2},
			},
		},
		{
			ID:          "birthday-party",
			Title:       "The Birthday Party",
			Description: "Your friend didn't invite you to their birthday party, but invited others.",
			Choices: []Choice{
				{ID: "stop-friends", Text: "Stop being friends with them immediately", Emotion: "Hurt", Emoji: "💔",
					Feedback: "It's okay to feel hurt, but try talking to them first about how you feel.", Points: 1},
				{ID: "talk", Text: "Talk to them about how it made you feel", Emotion: "Honest Communication", Emoji: "💭",
					Feedback: "Perfect! Sharing your feelings honestly helps friendships grow stronger!", Points: 3},
				{ID: "pretend", Text: "Pretend you don't care at all", Emotion: "Avoidance", Emoji: "🤷",
					Feedback: "Your feelings matter! It's okay to let friends know when something hurts.", Points: 2},
			},
		},
		{
			ID:          "big-performance",
			Title:       "The Big Performance",
			Description: "You have to perform in front of the whole school and you feel very nervous.",
			Choices: []Choice{
				{ID: "fake-sick", Text: "Fake being sick to avoid it", Emotion: "Fear Avoidance", Emoji: "🤒",
					Feedback: "Facing fears helps us grow! You can do hard things with practice.", Points: 1},
				{ID: "breathe", Text: "Do breathing exercises and remind yourself you prepared well", Emotion: "Courage", Emoji: "💪",
					Feedback: "Amazing! You're being brave and using calming strategies!", Points: 3},
				{ID: "rush", Text: "Rush through it as fast as possible", Emotion: "Anxiety", Emoji: "😰",
					Feedback: "Slowing down and breathing can help you do your best!", Points: 2},
			},
		},
	}
}
