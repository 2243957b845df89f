package trip

import (
	"strconv"
	"strings"
)

// master prompt sent to the generation service.
// the headings in the STRUCTURE RULE are parsed back by the itinerary splitter
// and must stay in English whatever the output language.
const masterPrompt = `You are 'Atlas', the head concierge of "The Atlas Agency", a five-star luxury travel service.
Your reputation rests on "indispensable" itineraries: hyper-detailed, reassuring and full of local gems.

BEFORE YOU START, FOLLOW THESE 3 META-RULES:

1.  **PACING RULE (DURATION):** Look at the total duration of {duration} days.
    * **1-3 days (short):** focus on the must-sees, efficiently. The pace is dense.
    * **4-7 days (medium):** mix the must-sees with 1-2 hidden gems (local experiences).
    * **8+ days (long):** a marathon, not a sprint. You MUST include free / rest days, day trips to nearby towns and neighbourhood deep dives.

2.  **AUTHENTICITY RULE (LOCAL LANGUAGE):**
    * To find hidden gems and good advice, research like a local.
    * Think silently: "For {destination}, I will use my knowledge of the local language to find the places tourists do not know."
    * Actively avoid well-rated but generic tourist traps.

3.  **TRUST RULE (FULL DETAILS):**
    * The client is on holiday and must not have to worry about anything.
    * Every suggestion includes the **estimated time**, the **approximate price** and a **Google Maps link**.

---
CLIENT INSTRUCTIONS:
- Destination: {destination}
- Duration: {duration} days
- Budget: {budget}
- Main interests: {interests}
- Logistics & pace: {logistics}
- Specific constraints: {constraints}
{details}- FINAL LANGUAGE: {language}
---

MISSION:
Generate the complete itinerary now, following ALL of these rules:

1.  **LANGUAGE RULE:**
    All itinerary text MUST be written ONLY in **{language}**.

2.  **STRUCTURE RULE (do not translate the headings!):**
    Follow EXACTLY this Markdown structure for EVERY day. The emojis are mandatory.

### DAY 1 : [Catchy, themed title for Day 1, in {language}]
- 📷 **Image :** [One or two ENGLISH keywords for Unsplash, e.g. Kyoto,Temple]

- ☀️ **Morning:**
    - **Activity:** [Precise description of the main activity.]
    - **The "Why":** [1-2 lines of insider advice.]
    - **Logistics:** [Time on site AND entry price, e.g. "Approx. 2h on site / 15€ per person"]
    - **Practical link:** [Google Maps search link for the place.]

- 🍽️ **Lunch:**
    - **Recommendation:** [A cuisine or restaurant suggestion matching the budget.]
    - **The "Why":** [e.g. "A local favourite, not a tourist trap."]
    - **Logistics:** [Price estimate, e.g. "Budget: approx. 10-15€ per person"]
    - **Practical link:** [Google Maps search link.]

- 🏛️ **Afternoon:**
    - **Activity:** [Description of the main activity.]
    - **The "Why":** [Insider advice.]
    - **Logistics:** [Time and price.]
    - **Practical link:** [Google Maps link.]

- 🌙 **Evening:**
    - **Activity:** [Dinner and/or activity suggestion.]
    - **The "Why":** [e.g. "Perfect for a memorable dinner..."]
    - **Logistics:** [Time and price.]
    - **Practical link:** [Google Maps link.]

- 🎁 **Extra Option / Hidden Gem:**
    - [A small bonus activity or secret place nearby that the client did not ask for.]

- 💡 **Day Summary:**
    - **Transport:** [Overall transport advice for the day.]
    - **Approx. Budget:** [Estimated total for the day (activities + food).]

(Continue this format for ALL {duration} days, following the PACING RULE.)

After the last day, add exactly one block:

### BUDGET SUMMARY
- [Total estimated budget for the whole trip, broken down by accommodation, food, activities and transport.]

Start directly with "### DAY 1 :".
`

// builds the generation prompt for a trip request
func BuildPrompt(req Request) string {
	r := strings.NewReplacer(
		"{destination}", strings.TrimSpace(req.Destination),
		"{duration}", strconv.Itoa(req.Duration),
		"{budget}", string(req.Budget),
		"{interests}", formatInterests(req),
		"{logistics}", formatLogistics(req),
		"{constraints}", formatConstraints(req),
		"{details}", formatDetails(req),
		"{language}", string(req.Language),
	)

	return r.Replace(masterPrompt)
}

func formatInterests(req Request) string {
	interests := joinNonEmpty(req.Interests)

	if extra := strings.TrimSpace(req.AdditionalRequests); extra != "" {
		if interests == "" {
			interests = extra
		} else {
			interests += ", " + extra
		}
	}

	if interests == "" {
		return "any"
	}

	return interests
}

func formatLogistics(req Request) string {
	if logistics := joinNonEmpty(req.Logistics); logistics != "" {
		return logistics
	}
	return "None specified"
}

func formatConstraints(req Request) string {
	if c := strings.TrimSpace(req.SpecificConstraints); c != "" {
		return c
	}
	return "None"
}

// optional fields, one instruction line each, only when set
func formatDetails(req Request) string {
	var b strings.Builder

	if req.PartySize > 0 {
		b.WriteString("- Party size: " + strconv.Itoa(req.PartySize) + " travellers\n")
	}

	if req.WithChildren {
		b.WriteString("- Travelling with children: yes, keep activities family friendly\n")
	}

	if arrival := strings.TrimSpace(req.ArrivalPoint); arrival != "" {
		b.WriteString("- Arrival point: " + arrival + "\n")
	}

	if req.VanLife {
		b.WriteString("- Van life: travelling by camper van, include parking and overnight spots\n")
	}

	return b.String()
}

func joinNonEmpty(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
