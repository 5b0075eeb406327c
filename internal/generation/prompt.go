package generation

import (
	"strings"
)

// StoryPromptPlaceholder is replaced with the story prompt in custom user messages.
const StoryPromptPlaceholder = "{{STORY_PROMPT}}"

// CustomPrompt overrides the built-in instruction blocks. Empty fields are omitted;
// an empty UserMessage keeps the default user message.
type CustomPrompt struct {
	System      string `json:"system"`
	Critical    string `json:"critical"`
	Realism     string `json:"realism"`
	Additional  string `json:"additional"`
	UserMessage string `json:"userMessage"`
}

const systemPreamble = `You are a professional YouTube story expander specializing in Reddit-style narratives. Your goal is to expand scripts that are 2-3 minutes long into 75-90 minute long scripts (MINIMUM 14,000 words, target 15,000-16,000 words).`

const criticalInstructions = `CRITICAL INSTRUCTIONS:
- Study the reference examples above carefully - they show the EXACT style, pacing, and structure expected
- Use the first 200 words of the input story exactly as written, then expand from there, make sure crux of story isnt given away
- Follow the narrative patterns shown in the knowledge base examples
- Maintain the same emotional intensity and detailed storytelling approach
- Include EXTENSIVE character development, deep psychological exploration, and complex plot progression
- Develop multiple subplots and character arcs that interweave naturally
- Build tension through careful pacing, realistic consequences, and layered conflicts
- Create engaging cliffhangers and emotional hooks throughout
- Add rich backstory, detailed world-building, and immersive scene descriptions
- Include meaningful dialogue that reveals character depth and advances the plot
- Explore themes, motivations, and emotional complexity at a deeper level
- Target audience: 15-25 year olds seeking dramatic, relatable, and deeply engaging content`

const realismRequirements = `MANDATORY REALISM REQUIREMENTS:
- Characters must behave in psychologically realistic ways with believable motivations
- Include genuine human reactions: hesitation, doubt, conflicted emotions, realistic decision-making
- Show realistic consequences for actions (legal, social, financial, emotional)
- Include mundane details that ground the story in reality (work schedules, financial concerns, family obligations)
- Characters should have realistic flaws, limitations, and inconsistencies
- Dialogue must sound natural and age-appropriate, avoiding overly dramatic or theatrical language
- Include realistic timelines - major life changes don't happen overnight
- Show gradual character development rather than sudden personality shifts
- Include realistic obstacles: bureaucracy, miscommunication, practical limitations
- Avoid unrealistic coincidences - events should flow logically from character actions
- Include realistic emotional processing time - people need time to process trauma, betrayal, etc.
- Show realistic financial constraints and practical considerations affecting decisions`

const perspectiveRequirement = `MANDATORY PERSPECTIVE REQUIREMENT:
- The story MUST be told from a MALE perspective (first person "I" narrative)
- If the original story uses a female perspective, adapt it to be from a male narrator's viewpoint
- All experiences, emotions, and situations should be written as if experienced by a male protagonist
- Ensure pronouns, reactions, and character interactions reflect a male narrator throughout`

const userInstructions = `Continue writing a unique Reddit-style story targeted at a 15-25-year-old audience. The story must be emotionally engaging, relatable, and designed to hold the viewer's attention all the way through. Use the first 200 words of the input story exactly as written to begin your script. After that, develop the plot with strong character arcs, emotional twists, and moments of suspense or tension that match the tone and pacing of the opening.

CRITICAL WORD COUNT REQUIREMENT - MINIMUM 14,000 WORDS:
This is absolutely mandatory. The story must reach AT LEAST 14,000 words (preferably 15,000-16,000). This is about 90 minutes of spoken content. DO NOT finish early. Keep expanding the narrative until you reach this target.

WORD COUNT CHECKPOINTS:
- At 3,000 words: You should just be establishing the main conflict, DO NOT giveaway the crux of the story here, just build
- At 6,000 words: Character development and subplots should be deepening
- At 9,000 words: Major plot complications and turning points
- At 12,000 words: Building toward climax with multiple storylines converging
- At 14,000+ words: Resolution and conclusion

IMPORTANT: Do not explain anything, just write the story. Structure it for a social media audience, with immersive pacing and cliffhangers that keep people watching.

FINAL VERIFICATION: Before concluding, ensure the story has reached AT LEAST 14,000 words. If not, continue expanding with additional plot developments, character interactions, and narrative depth.`

// SystemPrompt builds the default system instruction around the reference context.
func SystemPrompt(ragContext string) string {
	return strings.Join([]string{
		systemPreamble,
		ragContext,
		criticalInstructions,
		realismRequirements,
		perspectiveRequirement,
	}, "\n\n")
}

// UserMessage wraps the story prompt in the default expansion instructions.
func UserMessage(storyPrompt string) string {
	var b strings.Builder
	b.WriteString("Story Prompt to Expand:\n\n<prompt>\n")
	b.WriteString(storyPrompt)
	b.WriteString("\n</prompt>\n\n")
	b.WriteString(userInstructions)
	return b.String()
}

// CustomSystemPrompt joins the custom blocks around the reference context.
// Missing blocks leave empty paragraphs so the layout stays fixed.
func CustomSystemPrompt(custom CustomPrompt, ragContext string) string {
	return strings.Join([]string{
		custom.System,
		ragContext,
		custom.Critical,
		custom.Realism,
		custom.Additional,
	}, "\n\n")
}

// CustomUserMessage returns the custom user message with every placeholder replaced,
// or the default user message when none was supplied.
func CustomUserMessage(custom CustomPrompt, storyPrompt string) string {
	if custom.UserMessage == "" {
		return UserMessage(storyPrompt)
	}
	return strings.ReplaceAll(custom.UserMessage, StoryPromptPlaceholder, storyPrompt)
}

// Messages returns the system and user messages for one expansion request.
func Messages(storyPrompt, ragContext string, custom *CustomPrompt) (system, user string) {
	if custom == nil {
		return SystemPrompt(ragContext), UserMessage(storyPrompt)
	}
	return CustomSystemPrompt(*custom, ragContext), CustomUserMessage(*custom, storyPrompt)
}
