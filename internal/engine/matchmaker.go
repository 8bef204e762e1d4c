package engine

const BotName = "bot"

// Contender is a player as the matchmaker and simulator see it.
type Contender struct {
	ID     string
	Name   string
	Health int
	Roster Roster
	Bot    bool
}

type Pairing struct {
	White Contender
	Black Contender
}

// Pair shuffles the contenders and pairs them up in order. With an odd
// count the first shuffled contender is cloned as a bot so everyone plays.
func Pair(contenders []Contender, r Rand) []Pairing {
	pool := append([]Contender(nil), contenders...)
	Shuffle(r, pool)
	if len(pool)%2 == 1 {
		bot := pool[0]
		bot.Name = BotName
		bot.Bot = true
		pool = append(pool, bot)
	}

	out := make([]Pairing, 0, len(pool)/2)
	for i := 0; i+1 < len(pool); i += 2 {
		out = append(out, Pairing{White: pool[i], Black: pool[i+1]})
	}
	return out
}
