package constant

// Canned response templates. Contact details are injected from config so
// deployments can rebrand without touching code. All formats take
// (brand, phone, email) unless noted otherwise.

const PartnershipResponseTemplate = `Thank you very much for your interest in working with %[1]s!

**BUSINESS PARTNERSHIP**
We would be glad to establish a business relationship with you.

**Business hotline**: %[2]s
**Email**: %[3]s
**Office hours**: Monday-Friday, 8:00-16:00

**What we offer our partners:**
- The full range of %[1]s products (salts, probiotics, supplements, aquarium systems)
- Technical support and product training
- Marketing materials and sales support
- Competitive partnership terms

If you have questions about distributing our products, our specialists are
ready to provide full support and answer all business inquiries.

We look forward to hearing from you!`

const TechnicalSupportResponseTemplate = `Thank you for contacting %[1]s!

**TECHNICAL SUPPORT**
Our experts are ready to help you resolve technical issues.

**Technical helpline**: %[2]s
**Email**: %[3]s
**Office hours**: Monday-Friday, 8:00-16:00

**How we can help:**
- Technical advice on our products
- Interpretation of ICP test results
- Aquarium parameter optimization
- Livestock troubleshooting

**Please prepare for the call:**
- Aquarium model and volume
- Current water parameters
- %[1]s products in use
- A description of the problem

Our specialists will answer all your technical questions!`

const TradeSecretResponseTemplate = `Thank you for your question about %[1]s production processes.

**Production details are a trade secret** - we cannot disclose formulas,
manufacturing methods or exact ingredient compositions.

**What we can share:**
- All products are manufactured in-house with strict batch quality control
- We operate our own research laboratory and coral breeding facility
- Products are tested in real husbandry conditions before release
- We use raw materials of the highest purity
- Production runs in small batches to guarantee repeatability

**What makes our production stand out:**
- Probiotic method: beneficial bacteria cultures in our marine line
- Hybrid salts: natural-synthetic blends enriched with vitamins
- In-house testing on living organisms before any release

**Technical contact**: %[2]s (Mon-Fri, 8:00-16:00)
**Email**: %[3]s`

const DosageFallbackTemplate = `I could not find detailed dosage information for this product in the %[1]s knowledge base.

**Dosage instructions are printed on the product packaging**
- Always check the label before use
- Start with the smallest recommended dose
- Observe the aquarium's reaction and adjust the dose

**General %[1]s dosing principles:**
- Label doses are safe for standard aquariums
- When in doubt, consult an experienced aquarist
- Test water parameters regularly after dosing

**Technical helpline**: %[2]s (Mon-Fri, 8:00-16:00)
**Email**: %[3]s`

const EscalationResponseTemplate = `I'm sorry, I could not find sufficiently precise information to answer your question in the %[1]s knowledge base.

**You can try to:**
1. Ask the question in more detail
2. Check the instructions on the product packaging
3. Contact our experts directly

**Expert helpline**: %[2]s (Mon-Fri, 8:00-16:00)
**Email**: %[3]s

**Please prepare for the conversation:**
- Aquarium volume and setup type
- Current water parameters
- Products you are using

Our specialists will be happy to answer all your questions!`

// ContactFooterTemplate is appended to generated answers that omit a
/// contact reference. Args: phone, email.
const ContactFooterTemplate = `

**Questions? Contact our experts**: %s | %s`

// GenericFailureMessage is returned when answer generation itself fails.
const GenericFailureMessage = `I'm sorry, something went wrong while preparing your answer. Please try again in a moment.`

// NoResultsMessage is returned when an accepted attempt carries no documents.
const NoResultsMessage = `I could not find information on this topic. Could you rephrase or add more detail to your question?`

// GroundingPhrase must appear in augmented answers; the safety gate
// rejects augmentations that drop it.
const GroundingPhrase = "Based on available information"
