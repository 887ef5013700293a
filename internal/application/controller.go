package application

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
	repo "github.com/oksasatya/microservices-console/internal/domain/repository"
	"github.com/oksasatya/microservices-console/pkg/events"
)

// Alerts and prompts shown to the user.
const (
	AlertAddUser        = "Failed to add user"
	AlertDeleteUser     = "Failed to delete user"
	AlertAddProduct     = "Failed to add product"
	AlertDeleteProduct  = "Failed to delete product"
	PromptDeleteUser    = "Delete this user?"
	PromptDeleteProduct = "Delete this product?"
)

const (
	collectionUsers    = "users"
	collectionProducts = "products"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// IntentPublisher receives a JSON message after each accepted mutation.
// helpers.RabbitPublisher satisfies it.
type IntentPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserForm carries the raw values of the user form.
type UserForm struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
}

// ProductForm carries the raw values of the product form.
type ProductForm struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
}

// Dependencies are shared by every controller. They are built once from the
// configured endpoints, so tests can swap any of them for doubles.
type Dependencies struct {
	Users    repo.UserRepository
	Products repo.ProductRepository
	Health   *HealthChecker
	Events   IntentPublisher
	Logger   *logrus.Logger
}

// View is everything a page needs to render one session.
type View struct {
	ActiveTab    Tab
	Users        PanelSnapshot[entity.User]
	Products     PanelSnapshot[entity.Product]
	UserDraft    UserForm
	ProductDraft ProductForm
	Statuses     []entity.Indicator
	Alert        string
}

// Controller mirrors remote list state into a page session and relays the
// user's create and delete intents to the owning services.
type Controller struct {
	deps    Dependencies
	session string

	mu           sync.Mutex
	activeTab    Tab
	userDraft    UserForm
	productDraft ProductForm
	alert        string

	users    Panel[entity.User]
	products Panel[entity.Product]
}

func NewController(deps Dependencies, session string) *Controller {
	deps.Logger = orDiscard(deps.Logger)
	if session == "" {
		session = "-"
	}
	return &Controller{deps: deps, session: session}
}

func orDiscard(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	d := logrus.New()
	d.SetOutput(io.Discard)
	return d
}

func (c *Controller) log() *logrus.Entry {
	return c.deps.Logger.WithField("session", c.session)
}

// Init runs the page start-up sequence: the users list is loaded without
// selecting a tab.
func (c *Controller) Init(ctx context.Context) {
	c.LoadUsers(ctx)
}

// CheckServiceHealth refreshes both status indicators.
func (c *Controller) CheckServiceHealth(ctx context.Context) {
	if c.deps.Health == nil {
		return
	}
	c.deps.Health.CheckServiceHealth(ctx)
}

// ShowTab makes name the only active tab and reloads its list.
func (c *Controller) ShowTab(ctx context.Context, name string) error {
	tab, err := ParseTab(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.activeTab = tab
	c.mu.Unlock()

	switch tab {
	case TabUsers:
		c.LoadUsers(ctx)
	case TabProducts:
		c.LoadProducts(ctx)
	}
	return nil
}

// ActiveTab returns the selected tab, TabNone before the first ShowTab.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// LoadUsers replaces the users panel with the current collection.
func (c *Controller) LoadUsers(ctx context.Context) {
	reload(ctx, c, &c.users, collectionUsers, c.deps.Users.List)
}

// LoadProducts replaces the products panel with the current collection.
func (c *Controller) LoadProducts(ctx context.Context) {
	reload(ctx, c, &c.products, collectionProducts, c.deps.Products.List)
}

func reload[T any](ctx context.Context, c *Controller, p *Panel[T], collection string, list func(context.Context) ([]T, error)) {
	gen := p.Begin()
	metrics.Add(mListLoads, 1)

	items, err := list(ctx)
	state := ListLoaded
	if err != nil {
		state = ListFailed
		metrics.Add(mListLoadFailures, 1)
		c.log().WithError(err).WithField("collection", collection).Warn("list load failed")
	}
	if !p.Commit(gen, state, items) {
		metrics.Add(mReloadsDiscarded, 1)
		c.log().WithFields(logrus.Fields{"collection": collection, "generation": gen}).Debug("superseded reload discarded")
	}
}

// SubmitUser forwards the form to the user-service. On success the draft is
// cleared and the list reloaded; on failure the draft keeps the input and an
// alert is raised.
func (c *Controller) SubmitUser(ctx context.Context, f UserForm) {
	c.mu.Lock()
	c.userDraft = f
	c.mu.Unlock()

	if err := c.deps.Users.Create(ctx, entity.NewUser{Name: f.Name, Email: f.Email}); err != nil {
		c.fail(AlertAddUser, err, collectionUsers)
		return
	}
	metrics.Add(mMutations, 1)

	c.mu.Lock()
	c.userDraft = UserForm{}
	c.mu.Unlock()

	c.publish(ctx, events.UserCreated, collectionUsers, "")
	c.LoadUsers(ctx)
}

// SubmitProduct is SubmitUser for the product form. Price is forwarded as typed.
func (c *Controller) SubmitProduct(ctx context.Context, f ProductForm) {
	c.mu.Lock()
	c.productDraft = f
	c.mu.Unlock()

	err := c.deps.Products.Create(ctx, entity.NewProduct{Name: f.Name, Description: f.Description, Price: f.Price})
	if err != nil {
		c.fail(AlertAddProduct, err, collectionProducts)
		return
	}
	metrics.Add(mMutations, 1)

	c.mu.Lock()
	c.productDraft = ProductForm{}
	c.mu.Unlock()

	c.publish(ctx, events.ProductCreated, collectionProducts, "")
	c.LoadProducts(ctx)
}

// DeleteUser asks for confirmation, deletes the user and reloads the whole list.
func (c *Controller) DeleteUser(ctx context.Context, id entity.ID, confirm Confirmer) {
	if !confirmed(confirm, PromptDeleteUser) {
		metrics.Add(mDeletesDeclined, 1)
		return
	}
	if err := c.deps.Users.Delete(ctx, id); err != nil {
		c.fail(AlertDeleteUser, err, collectionUsers)
		return
	}
	metrics.Add(mMutations, 1)
	c.publish(ctx, events.UserDeleted, collectionUsers, id.String())
	c.LoadUsers(ctx)
}

// DeleteProduct asks for confirmation, deletes the product and reloads the whole list.
func (c *Controller) DeleteProduct(ctx context.Context, id entity.ID, confirm Confirmer) {
	if !confirmed(confirm, PromptDeleteProduct) {
		metrics.Add(mDeletesDeclined, 1)
		return
	}
	if err := c.deps.Products.Delete(ctx, id); err != nil {
		c.fail(AlertDeleteProduct, err, collectionProducts)
		return
	}
	metrics.Add(mMutations, 1)
	c.publish(ctx, events.ProductDeleted, collectionProducts, id.String())
	c.LoadProducts(ctx)
}

func confirmed(confirm Confirmer, prompt string) bool {
	return confirm != nil && confirm.Confirm(prompt)
}

func (c *Controller) fail(alert string, err error, collection string) {
	metrics.Add(mMutationFailures, 1)
	c.log().WithError(err).WithField("collection", collection).Warn(alert)
	c.mu.Lock()
	c.alert = alert
	c.mu.Unlock()
}

func (c *Controller) publish(ctx context.Context, typ, collection, id string) {
	if c.deps.Events == nil {
		return
	}
	in := events.New(typ, collection, id)
	in.Session = c.session
	if err := c.deps.Events.PublishJSON(ctx, in); err != nil {
		metrics.Add(mEventPublishError, 1)
		c.log().WithError(err).WithField("type", typ).Warn("failed to publish intent")
	}
}

// TakeAlert returns the pending alert and clears it.
func (c *Controller) TakeAlert() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.alert
	c.alert = ""
	return a
}

// ClearAlert clears the pending alert only if it is still shown, so an alert
// raised after the caller's View snapshot survives until the next render.
func (c *Controller) ClearAlert(shown string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if shown == "" || c.alert != shown {
		return false
	}
	c.alert = ""
	return true
}

// View snapshots the session. The pending alert is included but not consumed.
func (c *Controller) View() View {
	c.mu.Lock()
	v := View{
		ActiveTab:    c.activeTab,
		UserDraft:    c.userDraft,
		ProductDraft: c.productDraft,
		Alert:        c.alert,
	}
	c.mu.Unlock()

	v.Users = c.users.Snapshot()
	v.Products = c.products.Snapshot()
	if c.deps.Health != nil && c.deps.Health.Board != nil {
		v.Statuses = c.deps.Health.Board.Snapshot()
	}
	return v
}

// UsersPanel returns the users panel alone, for fragment rendering.
func (c *Controller) UsersPanel() PanelSnapshot[entity.User] { return c.users.Snapshot() }

// ProductsPanel returns the products panel alone, for fragment rendering.
func (c *Controller) ProductsPanel() PanelSnapshot[entity.Product] { return c.products.Snapshot() }
