package help

const ColdstartYAML = `# url-metadata Quick Start

what_it_does: |
  Fetches a web page and merges structured data (JSON-LD), Open Graph,
  Twitter card and plain HTML into one business record:
  businessName, description, industry, address, website, logo.

priority:
  businessName: "structured data > og > twitter > <h1>/<title>"
  description: "structured data > og > twitter > meta description"
  industry: "structured data > og:type > URL keywords"
  address: "structured data > footer text"
  website: "og:url > requested URL (after redirects)"
  logo: "structured data > og:image > twitter:image"

commands:
  single_url: |
    url-metadata extract --urls "https://example.com"

  batch_yaml: |
    url-metadata extract --urls "https://a.com,https://b.com" --workers 8 --format yaml

  selected_fields: |
    url-metadata extract --urls-file urls.txt --fields businessName,industry

  cached_rerun: |
    url-metadata extract --urls "https://example.com" --cache-dir .cache --max-age 6h

  record_history: |
    url-metadata extract --urls "https://example.com" --save --db history.db
    url-metadata history --db history.db
    url-metadata history show --db history.db 1

  api_server: |
    url-metadata serve --port 5009
    curl -X POST localhost:5009/extract -d '{"url":"https://example.com"}'

social_urls:
  - "instagram.com / instagr.am URLs are never fetched"
  - "they return industry 'Social Media' and rawMetadata.oauthAvailable: true"
  - "use GET /auth/instagram/url then POST /auth/instagram/callback to connect"

environment:
  PORT: "API port (default 5009)"
  INSTAGRAM_CLIENT_ID: "required for OAuth endpoints"
  INSTAGRAM_CLIENT_SECRET: "required for OAuth endpoints"
  INSTAGRAM_REDIRECT_URI: "default https://znapsite.com/auth/instagram/callback"
  LOG_LEVEL: "debug, info, warn, error"
  LOG_FORMAT: "text or json"
  HISTORY_DB: "enables extraction history for serve"
  note: "a .env file in the working directory is loaded if present"
`
