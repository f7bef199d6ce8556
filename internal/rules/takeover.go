package rules

// TakeoverSignature describes one third-party service that can leave a
// subdomain hijackable: CNAME substrings that indicate delegation to
// the service, and response-body fingerprints that indicate the target
// resource is unclaimed.
type TakeoverSignature struct {
	Service      string
	CNAMEs       []string
	Fingerprints []string
}

// TakeoverSignatures is evaluated in declaration order; the first
// signature whose CNAME pattern matches wins. Keep the order stable —
// reordering entries changes which service a multi-matching CNAME is
// attributed to.
var TakeoverSignatures = []TakeoverSignature{
	{
		Service:      "github",
		CNAMEs:       []string{"github.io", "github.map.fastly.net"},
		Fingerprints: []string{"There isn't a GitHub Pages site here", "For root URLs"},
	},
	{
		Service:      "heroku",
		CNAMEs:       []string{"herokuapp.com", "herokussl.com"},
		Fingerprints: []string{"no-such-app.html", "No such app"},
	},
	{
		Service:      "shopify",
		CNAMEs:       []string{"myshopify.com"},
		Fingerprints: []string{"Sorry, this shop is currently unavailable"},
	},
	{
		Service:      "tumblr",
		CNAMEs:       []string{"tumblr.com"},
		Fingerprints: []string{"Whatever you were looking for doesn't currently exist"},
	},
	{
		Service:      "wordpress",
		CNAMEs:       []string{"wordpress.com"},
		Fingerprints: []string{"Do you want to register"},
	},
	{
		Service:      "desk",
		CNAMEs:       []string{"desk.com"},
		Fingerprints: []string{"Please try again or try Desk.com free for"},
	},
	{
		Service:      "fastly",
		CNAMEs:       []string{"fastly.net"},
		Fingerprints: []string{"Fastly error: unknown domain"},
	},
	{
		Service:      "feedpress",
		CNAMEs:       []string{"redirect.feedpress.me"},
		Fingerprints: []string{"The feed has not been found"},
	},
	{
		Service:      "ghost",
		CNAMEs:       []string{"ghost.io"},
		Fingerprints: []string{"The thing you were looking for is no longer here"},
	},
	{
		Service:      "pantheon",
		CNAMEs:       []string{"pantheonsite.io"},
		Fingerprints: []string{"404 error unknown site"},
	},
	{
		Service:      "surge",
		CNAMEs:       []string{"surge.sh"},
		Fingerprints: []string{"project not found"},
	},
	{
		Service:      "bitbucket",
		CNAMEs:       []string{"bitbucket.io"},
		Fingerprints: []string{"Repository not found"},
	},
	{
		Service:      "uservoice",
		CNAMEs:       []string{"uservoice.com"},
		Fingerprints: []string{"This UserVoice subdomain is currently unavailable"},
	},
	{
		Service:      "statuspage",
		CNAMEs:       []string{"statuspage.io"},
		Fingerprints: []string{"Status page doesn't exist", "You are being"},
	},
	{
		Service:      "zendesk",
		CNAMEs:       []string{"zendesk.com"},
		Fingerprints: []string{"Help Center Closed"},
	},
	{
		Service:      "vercel",
		CNAMEs:       []string{"vercel.app", "now.sh"},
		Fingerprints: []string{"The deployment could not be found", "DEPLOYMENT_NOT_FOUND"},
	},
	{
		Service:      "netlify",
		CNAMEs:       []string{"netlify.app", "netlify.com"},
		Fingerprints: []string{"Not Found - Request ID"},
	},
	{
		Service:      "aws_s3",
		CNAMEs:       []string{"s3.amazonaws.com", "s3-website"},
		Fingerprints: []string{"NoSuchBucket", "The specified bucket does not exist"},
	},
	{
		Service:      "azure",
		CNAMEs:       []string{"azurewebsites.net", "cloudapp.azure.com", "cloudapp.net"},
		Fingerprints: []string{"404 Web Site not found", "Error 404"},
	},
	{
		Service:      "readme",
		CNAMEs:       []string{"readme.io"},
		Fingerprints: []string{"Project doesnt exist... yet!"},
	},
	{
		Service:      "cargo",
		CNAMEs:       []string{"cargocollective.com"},
		Fingerprints: []string{"404 Not Found"},
	},
	{
		Service:      "webflow",
		CNAMEs:       []string{"proxy.webflow.com", "proxy-ssl.webflow.com"},
		Fingerprints: []string{"The page you are looking for doesn't exist or has been moved"},
	},
}

// SignatureFor returns the signature for a service name, or nil when
// the service is unknown.
func SignatureFor(service string) *TakeoverSignature {
	for i := range TakeoverSignatures {
		if TakeoverSignatures[i].Service == service {
			return &TakeoverSignatures[i]
		}
	}
	return nil
}
